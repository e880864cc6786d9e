package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/postdesk/internal/client/models"
	"github.com/dmitrijs2005/postdesk/internal/client/state"
	"github.com/dmitrijs2005/postdesk/internal/netx"
)

const excerptLength = 160

func (a *App) renderList(l state.List) {
	fmt.Fprintf(a.out, "All Posts (%d)", l.TotalCount)
	if l.Mode == state.Filtered {
		fmt.Fprintf(a.out, " matching %s", a.describeFilter(l))
	}
	fmt.Fprintln(a.out)

	if len(l.Results) == 0 {
		fmt.Fprintln(a.out, "  no posts")
	}
	for _, p := range l.Results {
		fmt.Fprintf(a.out, "  %-8s %s", p.ID, p.Title)
		if len(p.Tags) > 0 {
			fmt.Fprintf(a.out, "  #%s", strings.Join(p.Tags, " #"))
		}
		if names := categoryNames(p.Categories); names != "" {
			fmt.Fprintf(a.out, "  (%s)", names)
		}
		if p.FeaturedVideo != "" {
			fmt.Fprint(a.out, "  [video]")
		}
		fmt.Fprintln(a.out)
	}

	if state.ShowPagination(l) {
		fmt.Fprintf(a.out, "Page %d of %d\n", l.Page, state.TotalPages(l))
	}
}

func (a *App) describeFilter(l state.List) string {
	var parts []string
	if s := strings.TrimSpace(l.SearchText); s != "" {
		parts = append(parts, fmt.Sprintf("%q", s))
	}
	if l.Category != 0 {
		parts = append(parts, "category "+a.categoryName(l.Category))
	}
	return strings.Join(parts, " in ")
}

func (a *App) categoryName(id int64) string {
	for _, c := range a.form.Categories() {
		if c.ID == id {
			return c.Name
		}
	}
	return fmt.Sprintf("#%d", id)
}

func categoryNames(cats []models.Category) string {
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

func (a *App) renderPost(p *models.Post) {
	fmt.Fprintf(a.out, "%s  %s\n", p.ID, p.Title)
	if p.CreatedAt != nil {
		fmt.Fprintf(a.out, "  created:    %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(a.out, "  tags:       %s\n", strings.Join(p.Tags, ", "))
	}
	if names := categoryNames(p.Categories); names != "" {
		fmt.Fprintf(a.out, "  categories: %s\n", names)
	}
	if p.FeaturedImage != "" {
		fmt.Fprintf(a.out, "  image:      %s\n", netx.MediaURL(p.FeaturedImage, a.config.MediaBaseURL))
	}
	if p.FeaturedVideo != "" {
		fmt.Fprintf(a.out, "  video:      %s\n", netx.MediaURL(netx.StripQuery(p.FeaturedVideo), a.config.MediaBaseURL))
	}
	fmt.Fprintf(a.out, "  %s\n", state.Excerpt(p.Body, excerptLength))
}

func (a *App) renderDraft(d state.Draft) {
	if d.Editing() {
		fmt.Fprintf(a.out, "Editing post %s\n", d.ID)
	} else {
		fmt.Fprintln(a.out, "New post")
	}
	fmt.Fprintf(a.out, "  title:      %s\n", d.Title)
	fmt.Fprintf(a.out, "  body:       %s\n", state.Excerpt(d.Body, excerptLength))
	fmt.Fprintf(a.out, "  tags:       %s\n", strings.Join(d.Tags, ", "))

	names := make([]string, 0, len(d.Categories))
	for _, id := range d.Categories {
		names = append(names, a.categoryName(id))
	}
	fmt.Fprintf(a.out, "  categories: %s\n", strings.Join(names, ", "))

	switch {
	case d.ImageFile != nil:
		fmt.Fprintf(a.out, "  image:      %s (pending, %s)\n", d.ImageFile.Name, d.ImageFile.ContentType)
	case d.ImageURL != "":
		fmt.Fprintf(a.out, "  image:      %s\n", netx.MediaURL(d.ImageURL, a.config.MediaBaseURL))
	}

	switch {
	case a.form.UploadPending():
		fmt.Fprintln(a.out, "  video:      uploading...")
	case d.Video != "":
		fmt.Fprintf(a.out, "  video:      %s\n", netx.MediaURL(d.Video, a.config.MediaBaseURL))
	}
}
