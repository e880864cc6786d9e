package services

import (
	"context"

	"github.com/dmitrijs2005/postdesk/internal/client/models"
	"github.com/dmitrijs2005/postdesk/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Bootstrap loads the data a session starts with: the category catalog, the
// first list page and, when editID is set, the post being edited. The loads
// are independent and run concurrently; each one commits its own state even
// when another fails. The first error is returned.
func Bootstrap(ctx context.Context, list PostList, form PostForm, editID models.ID, log logging.Logger) error {
	if log == nil {
		log = logging.Nop()
	}

	var g errgroup.Group

	g.Go(func() error {
		_, err := form.LoadCategories(ctx)
		return err
	})
	g.Go(func() error {
		_, err := list.Load(ctx)
		return err
	})
	if editID != "" {
		g.Go(func() error {
			_, err := form.Edit(ctx, editID)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		log.Warn(ctx, "session bootstrap incomplete", "error", err)
		return err
	}
	log.Debug(ctx, "session ready", "edit_id", editID)
	return nil
}
