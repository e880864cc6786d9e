package state

import (
	"strings"

	"github.com/dmitrijs2005/postdesk/internal/client/models"
)

const DefaultPageSize = 20

// Mode is the active fetch mode of the list.
type Mode int

const (
	// Paginated browses /posts/preview one page at a time.
	Paginated Mode = iota
	// Filtered holds the complete result set of a search.
	Filtered
)

func (m Mode) String() string {
	if m == Filtered {
		return "filtered"
	}
	return "paginated"
}

// List is the post list view state.
//
// SearchText and Category are the filter inputs; they only take effect on
// ApplyFilter. In Paginated mode TotalCount is the server count; in Filtered
// mode it is the size of the result set.
type List struct {
	Mode       Mode
	Page       int
	PageSize   int
	TotalCount int
	SearchText string
	Category   int64
	Results    []models.PostPreview
	Loading    bool
	Err        error
	Generation uint64
}

// FetchRequest describes the fetch a transition asks for.
type FetchRequest struct {
	Generation uint64
	Mode       Mode
	Page       int
	PageSize   int
	Query      models.SearchQuery
}

// FetchResult is the outcome of a FetchRequest.
type FetchResult struct {
	Generation uint64
	Results    []models.PostPreview
	Count      int
	Err        error
}

func NewList(pageSize int) List {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return List{Mode: Paginated, Page: 1, PageSize: pageSize}
}

// TotalPages is ceil(TotalCount / PageSize).
func TotalPages(l List) int {
	if l.PageSize <= 0 || l.TotalCount <= 0 {
		return 0
	}
	return (l.TotalCount + l.PageSize - 1) / l.PageSize
}

// ShowPagination reports whether page controls are visible: only in
// Paginated mode and only when there is more than one page.
func ShowPagination(l List) bool {
	return l.Mode == Paginated && TotalPages(l) > 1
}

// SetSearchText updates the search input without fetching.
func SetSearchText(l List, text string) List {
	l.SearchText = text
	return l
}

// SetCategory updates the category input without fetching; 0 clears it.
func SetCategory(l List, id int64) List {
	l.Category = id
	return l
}

// ApplyFilter enters Filtered mode when either filter input is set, and
// otherwise returns to Paginated mode at page 1. Pagination state is never
// remembered across modes.
func ApplyFilter(l List) (List, FetchRequest) {
	search := strings.TrimSpace(l.SearchText)
	l.Page = 1
	if search == "" && l.Category == 0 {
		l.Mode = Paginated
	} else {
		l.Mode = Filtered
	}
	return issue(l)
}

// GoToPage moves to page n clamped to [1, TotalPages]. It is a no-op (ok is
// false) in Filtered mode, when the clamped page is the current one, or when
// clamping would move against the requested direction (Page can exceed
// TotalPages after the count shrinks).
func GoToPage(l List, n int) (List, FetchRequest, bool) {
	if l.Mode != Paginated {
		return l, FetchRequest{}, false
	}

	last := TotalPages(l)
	if last < 1 {
		last = 1
	}
	requested := n
	n = min(max(n, 1), last)
	if n == l.Page ||
		(requested > l.Page && n < l.Page) ||
		(requested < l.Page && n > l.Page) {
		return l, FetchRequest{}, false
	}

	l.Page = n
	next, req := issue(l)
	return next, req, true
}

func NextPage(l List) (List, FetchRequest, bool) {
	return GoToPage(l, l.Page+1)
}

func PrevPage(l List) (List, FetchRequest, bool) {
	return GoToPage(l, l.Page-1)
}

// Reload re-issues the fetch of the current mode and page.
func Reload(l List) (List, FetchRequest) {
	return issue(l)
}

// issue bumps the generation, marks the list loading and describes the
// fetch for the current mode.
func issue(l List) (List, FetchRequest) {
	l.Generation++
	l.Loading = true

	req := FetchRequest{Generation: l.Generation, Mode: l.Mode}
	if l.Mode == Paginated {
		req.Page = l.Page
		req.PageSize = l.PageSize
		return l, req
	}

	search := strings.TrimSpace(l.SearchText)
	req.Query = models.SearchQuery{Search: search, CategoryID: l.Category}
	return l, req
}

// Resolve applies the outcome of a fetch. Outcomes of superseded generations
// are dropped (applied is false). A failed fetch keeps the previous results
// and records the error.
func Resolve(l List, res FetchResult) (List, bool) {
	if res.Generation != l.Generation {
		return l, false
	}

	l.Loading = false
	if res.Err != nil {
		l.Err = res.Err
		return l, true
	}

	l.Err = nil
	l.Results = res.Results
	if l.Results == nil {
		l.Results = []models.PostPreview{}
	}
	if l.Mode == Paginated {
		l.TotalCount = res.Count
	} else {
		l.TotalCount = len(l.Results)
	}
	return l, true
}

// RemovePost drops the post with the given id from the results and
// decrements TotalCount. It performs no fetch.
func RemovePost(l List, id models.ID) (List, bool) {
	kept := make([]models.PostPreview, 0, len(l.Results))
	for _, p := range l.Results {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	removed := len(kept) != len(l.Results)
	l.Results = kept
	if removed && l.TotalCount > 0 {
		l.TotalCount--
	}
	return l, removed
}
