// Package models defines the client-side data models used by PostDesk:
// posts as returned by the API, categories, and local media files.
package models

import "time"

// Category is read-only reference data fetched once per session.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Post is the full post detail, as fetched for editing.
type Post struct {
	ID            ID         `json:"id"`
	Title         string     `json:"title"`
	Body          string     `json:"body"`
	Tags          []string   `json:"tags"`
	Categories    []Category `json:"categories"`
	FeaturedImage string     `json:"featured_image"`
	FeaturedVideo string     `json:"featured_video"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// CategoryIDs flattens Categories to their identifiers, in order.
func (p *Post) CategoryIDs() []int64 {
	ids := make([]int64, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// PostPreview is the lightweight representation used in list views.
type PostPreview struct {
	ID            ID         `json:"id"`
	Title         string     `json:"title"`
	Tags          []string   `json:"tags"`
	Categories    []Category `json:"categories"`
	FeaturedImage string     `json:"featured_image"`
	FeaturedVideo string     `json:"featured_video"`
}

// PreviewPage is one page of the paginated preview listing.
type PreviewPage struct {
	Results []PostPreview `json:"results"`
	Count   int           `json:"count"`
}

// SearchQuery holds the criteria of an unpaginated filtered search.
// A zero CategoryID means no category filter.
type SearchQuery struct {
	Search     string
	CategoryID int64
	Tags       []string
}
