package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/postdesk/internal/client/models"
	"github.com/dmitrijs2005/postdesk/internal/client/state"
)

var errUsage = errors.New("usage")

func (a *App) usage(text string) error {
	printlnFn("Usage:", text)
	return errUsage
}

// afterFetch renders l, or notifies err while the previous results stay on
// screen.
func (a *App) afterFetch(l state.List, err error, fallback string) error {
	if err != nil {
		a.notifyErr(err, fallback)
		return err
	}
	a.renderList(l)
	return nil
}

func (a *App) List(ctx context.Context) error {
	l, err := a.list.Load(ctx)
	return a.afterFetch(l, err, "Failed to load posts")
}

func (a *App) NextPage(ctx context.Context) error {
	l, err := a.list.NextPage(ctx)
	return a.afterFetch(l, err, "Failed to load posts")
}

func (a *App) PrevPage(ctx context.Context) error {
	l, err := a.list.PrevPage(ctx)
	return a.afterFetch(l, err, "Failed to load posts")
}

func (a *App) Page(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return a.usage("page N")
	}
	l, err := a.list.GoToPage(ctx, n)
	return a.afterFetch(l, err, "Failed to load posts")
}

// Search sets the search input; "apply" runs it.
func (a *App) Search(ctx context.Context, arg string) error {
	a.list.SetSearchText(arg)
	if arg == "" {
		a.notify("Search text cleared, type 'apply' to refresh")
	} else {
		a.notify(fmt.Sprintf("Search text set to %q, type 'apply' to search", arg))
	}
	return nil
}

// Category sets the category input; "none" clears it.
func (a *App) Category(ctx context.Context, arg string) error {
	if arg == "" || strings.EqualFold(arg, "none") {
		a.list.SetCategory(0)
		a.notify("Category filter cleared, type 'apply' to refresh")
		return nil
	}
	id, err := parseCategoryID(arg)
	if err != nil {
		return a.usage("category ID|none")
	}
	a.list.SetCategory(id)
	a.notify(fmt.Sprintf("Category filter set to %s, type 'apply' to search", a.categoryName(id)))
	return nil
}

func (a *App) Apply(ctx context.Context) error {
	l, err := a.list.ApplyFilter(ctx)
	return a.afterFetch(l, err, "Failed to fetch posts")
}

func (a *App) Categories(ctx context.Context) error {
	cats := a.form.Categories()
	if len(cats) == 0 {
		var err error
		cats, err = a.form.LoadCategories(ctx)
		if err != nil {
			a.notifyErr(err, "Something went wrong!")
			return err
		}
	}

	d := a.form.Draft()
	for _, c := range cats {
		mark := " "
		if d.HasCategory(c.ID) {
			mark = "x"
		}
		fmt.Fprintf(a.out, "  [%s] %-4d %s\n", mark, c.ID, c.Name)
	}
	return nil
}

func (a *App) Show(ctx context.Context, arg string) error {
	if arg == "" {
		return a.usage("show ID")
	}
	p, err := a.api.GetPost(ctx, models.ID(arg))
	if err != nil {
		a.notifyErr(err, "Failed to fetch post data")
		return err
	}
	a.renderPost(p)
	return nil
}

func (a *App) Delete(ctx context.Context, arg string) error {
	if arg == "" {
		return a.usage("delete ID")
	}
	l, err := a.list.Delete(ctx, models.ID(arg))
	if err != nil {
		a.notifyErr(err, "Failed to delete post")
		return err
	}
	a.notify("Post deleted successfully!")
	a.renderList(l)
	return nil
}

func parseCategoryID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid category id %q", arg)
	}
	return id, nil
}
