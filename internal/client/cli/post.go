package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/postdesk/internal/client/models"
	"github.com/dmitrijs2005/postdesk/internal/common"
	"github.com/dmitrijs2005/postdesk/internal/filex"
)

var errNotImage = errors.New("only image files are allowed")

// openLocalFile is a test seam for filex.OpenLocalFile.
var openLocalFile = filex.OpenLocalFile

func (a *App) New(ctx context.Context) error {
	a.renderDraft(a.form.NewDraft())
	return nil
}

func (a *App) Edit(ctx context.Context, arg string) error {
	if arg == "" {
		return a.usage("edit ID")
	}
	d, err := a.form.Edit(ctx, models.ID(arg))
	if err != nil {
		a.notifyErr(err, "Failed to fetch post data")
		return err
	}
	a.renderDraft(d)
	return nil
}

func (a *App) Title(ctx context.Context, arg string) error {
	if arg == "" {
		var err error
		if arg, err = GetSimpleText(a.reader, "Add title", a.out); err != nil {
			return err
		}
	}
	a.form.SetTitle(arg)
	return nil
}

// Body sets the rich-text body. Without an argument the body is read as
// multiple lines of HTML.
func (a *App) Body(ctx context.Context, arg string) error {
	if arg == "" {
		var err error
		if arg, err = GetMultiline(a.reader, "Write your post here (HTML allowed)", a.out); err != nil {
			return err
		}
	}
	a.form.SetBody(arg)
	return nil
}

func (a *App) Tag(ctx context.Context, arg string) error {
	if arg == "" {
		return a.usage("tag TAG")
	}
	d := a.form.AddTag(arg)
	fmt.Fprintf(a.out, "tags: %v\n", d.Tags)
	return nil
}

func (a *App) Untag(ctx context.Context, arg string) error {
	if arg == "" {
		return a.usage("untag TAG")
	}
	d := a.form.RemoveTag(arg)
	fmt.Fprintf(a.out, "tags: %v\n", d.Tags)
	return nil
}

func (a *App) Cat(ctx context.Context, arg string) error {
	id, err := parseCategoryID(arg)
	if err != nil {
		return a.usage("cat ID")
	}
	d := a.form.ToggleCategory(id)
	if d.HasCategory(id) {
		a.notify("Selected category " + a.categoryName(id))
	} else {
		a.notify("Unselected category " + a.categoryName(id))
	}
	return nil
}

// DropCat removes a category from the available list and from the draft.
func (a *App) DropCat(ctx context.Context, arg string) error {
	id, err := parseCategoryID(arg)
	if err != nil {
		return a.usage("dropcat ID")
	}
	name := a.categoryName(id)
	a.form.RemoveCategory(id)
	a.notify("Removed category " + name)
	return nil
}

func (a *App) Image(ctx context.Context, arg string) error {
	if arg == "" {
		return a.usage("image PATH")
	}
	f, err := openLocalFile(arg)
	if err != nil {
		a.notifyErr(err, "Failed to open image")
		return err
	}
	if !f.IsImage() {
		_ = f.Close()
		a.notifyErr(errNotImage, "")
		return errNotImage
	}
	a.form.SetImageFile(f)
	a.notify(fmt.Sprintf("Featured image set to %s", f.Name))
	return nil
}

func (a *App) NoImage(ctx context.Context) error {
	a.form.ClearImage()
	a.notify("Featured image removed")
	return nil
}

// Video marks the upload pending, then transfers in the background; the
// outcome is reported by the upload hooks. Publishing is refused until it
// ends.
func (a *App) Video(ctx context.Context, arg string) error {
	if arg == "" {
		return a.usage("video PATH")
	}
	if a.form.UploadPending() {
		a.notify("A video is already uploading")
		return nil
	}

	f, err := openLocalFile(arg)
	if err != nil {
		a.notifyErr(err, "Please select a video first!")
		return err
	}

	run, err := a.form.BeginVideoUpload(f)
	if err != nil {
		if errors.Is(err, common.ErrUploadInProgress) {
			a.notify("A video is already uploading")
		}
		return err
	}

	a.uploads.Add(1)
	go func() {
		defer a.uploads.Done()
		if _, err := run(ctx); err != nil {
			a.log.Debug(ctx, "video upload ended with error", "error", err)
		}
	}()
	return nil
}

func (a *App) NoVideo(ctx context.Context) error {
	a.form.ClearVideo()
	a.notify("Featured video removed")
	return nil
}

func (a *App) ShowDraft(ctx context.Context) error {
	a.renderDraft(a.form.Draft())
	return nil
}

func (a *App) Publish(ctx context.Context) error {
	editing := a.form.Draft().Editing()

	p, err := a.form.Publish(ctx)
	if err != nil {
		a.notifyErr(err, "Failed to save post")
		return err
	}

	switch {
	case editing:
		a.notify("Post updated successfully!")
	case p.ID == "":
		a.notify("Post created successfully!")
	default:
		a.notify(fmt.Sprintf("Post created successfully! (id %s)", p.ID))
	}
	return nil
}
