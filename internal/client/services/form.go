package services

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/dmitrijs2005/postdesk/internal/client/client"
	"github.com/dmitrijs2005/postdesk/internal/client/models"
	"github.com/dmitrijs2005/postdesk/internal/client/state"
	"github.com/dmitrijs2005/postdesk/internal/common"
	"github.com/dmitrijs2005/postdesk/internal/logging"
)

// VideoUploader is the part of upload.Coordinator the form depends on.
type VideoUploader interface {
	Begin(f *models.LocalFile) error
	Run(ctx context.Context, f *models.LocalFile) (string, error)
	Pending() bool
	Reset() error
}

// PostForm owns the draft post.
//
// Contract:
//   - NewDraft / Edit: start a create flow, or hydrate the draft from a post.
//   - Setters: pure draft edits, applied under the form lock.
//   - UploadVideo: upload through the coordinator and store the reference.
//     BeginVideoUpload does the same in two steps: the upload is pending
//     when it returns, and the returned func performs the transfer.
//   - Publish: validate, then create or update. Rejected with
//     common.ErrUploadInProgress while an upload is pending.
//
// Epoch counts editor resets; it changes whenever transient editor state
// (picked files, rich text input) must be dropped.
type PostForm interface {
	NewDraft() state.Draft
	Edit(ctx context.Context, id models.ID) (state.Draft, error)
	Draft() state.Draft
	Epoch() int

	SetTitle(title string) state.Draft
	SetBody(body string) state.Draft
	AddTag(tag string) state.Draft
	RemoveTag(tag string) state.Draft
	ToggleCategory(id int64) state.Draft
	SetImageFile(f *models.LocalFile) state.Draft
	ClearImage() state.Draft
	ClearVideo() state.Draft

	LoadCategories(ctx context.Context) ([]models.Category, error)
	Categories() []models.Category
	RemoveCategory(id int64) state.Draft

	UploadVideo(ctx context.Context, f *models.LocalFile) (string, error)
	BeginVideoUpload(f *models.LocalFile) (func(ctx context.Context) (string, error), error)
	UploadPending() bool
	Publish(ctx context.Context) (*models.Post, error)
}

type postForm struct {
	client   client.Client
	uploader VideoUploader
	log      logging.Logger

	mu         sync.Mutex
	draft      state.Draft
	epoch      int
	categories []models.Category
}

func NewPostForm(c client.Client, uploader VideoUploader, log logging.Logger) PostForm {
	if log == nil {
		log = logging.Nop()
	}
	return &postForm{
		client:     c,
		uploader:   uploader,
		log:        log.With("component", "post_form"),
		draft:      state.NewDraft(),
		categories: []models.Category{},
	}
}

func (f *postForm) Draft() state.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *postForm) Epoch() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.epoch
}

// NewDraft discards the current draft and starts an empty one.
func (f *postForm) NewDraft() state.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
	return f.draft
}

func (f *postForm) resetLocked() {
	_ = f.draft.ImageFile.Close()
	f.draft = state.NewDraft()
	f.epoch++
	_ = f.uploader.Reset()
}

// Edit fetches post id and replaces the draft with it. On failure the
// current draft is kept.
func (f *postForm) Edit(ctx context.Context, id models.ID) (state.Draft, error) {
	p, err := f.client.GetPost(ctx, id)
	if err != nil {
		f.log.Warn(ctx, "fetch post for edit failed", "id", id, "error", err)
		return f.Draft(), err
	}

	d, err := state.DraftFromPost(p)
	if err != nil {
		return f.Draft(), fmt.Errorf("%w: %w", common.ErrFetch, err)
	}
	if d.ID == "" {
		d.ID = id
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	_ = f.draft.ImageFile.Close()
	f.draft = d
	f.epoch++
	f.log.Debug(ctx, "editing post", "id", d.ID, "epoch", f.epoch)
	return f.draft, nil
}

func (f *postForm) update(fn func(state.Draft) state.Draft) state.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = fn(f.draft)
	return f.draft
}

func (f *postForm) SetTitle(title string) state.Draft {
	return f.update(func(d state.Draft) state.Draft { d.Title = title; return d })
}

func (f *postForm) SetBody(body string) state.Draft {
	return f.update(func(d state.Draft) state.Draft { d.Body = body; return d })
}

func (f *postForm) AddTag(tag string) state.Draft {
	return f.update(func(d state.Draft) state.Draft { return d.AddTag(tag) })
}

func (f *postForm) RemoveTag(tag string) state.Draft {
	return f.update(func(d state.Draft) state.Draft { return d.RemoveTag(tag) })
}

func (f *postForm) ToggleCategory(id int64) state.Draft {
	return f.update(func(d state.Draft) state.Draft { return d.ToggleCategory(id) })
}

// SetImageFile selects a new featured image; a previously picked file is
// closed.
func (f *postForm) SetImageFile(file *models.LocalFile) state.Draft {
	return f.update(func(d state.Draft) state.Draft {
		if d.ImageFile != file {
			_ = d.ImageFile.Close()
		}
		return d.SetImageFile(file)
	})
}

func (f *postForm) ClearImage() state.Draft {
	return f.update(func(d state.Draft) state.Draft {
		_ = d.ImageFile.Close()
		return d.ClearImage()
	})
}

func (f *postForm) ClearVideo() state.Draft {
	return f.update(func(d state.Draft) state.Draft { return d.ClearVideo() })
}

func (f *postForm) LoadCategories(ctx context.Context) ([]models.Category, error) {
	cats, err := f.client.ListCategories(ctx)
	if err != nil {
		f.log.Warn(ctx, "load categories failed", "error", err)
		return f.Categories(), err
	}
	if cats == nil {
		cats = []models.Category{}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories = cats
	return slices.Clone(f.categories), nil
}

func (f *postForm) Categories() []models.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.categories)
}

// RemoveCategory drops id from the available categories and from the draft.
func (f *postForm) RemoveCategory(id int64) state.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories = slices.DeleteFunc(f.categories, func(c models.Category) bool { return c.ID == id })
	f.draft = f.draft.RemoveCategory(id)
	return f.draft
}

func (f *postForm) UploadPending() bool {
	return f.uploader.Pending()
}

// UploadVideo uploads file and stores the resulting reference in the draft.
// The reference is dropped if the editor was reset while uploading. The file
// is closed once the upload ends.
func (f *postForm) UploadVideo(ctx context.Context, file *models.LocalFile) (string, error) {
	run, err := f.BeginVideoUpload(file)
	if err != nil {
		return "", err
	}
	return run(ctx)
}

// BeginVideoUpload marks the upload pending before returning, so a Publish
// issued right after it is refused.
func (f *postForm) BeginVideoUpload(file *models.LocalFile) (func(ctx context.Context) (string, error), error) {
	epoch := f.Epoch()
	if err := f.uploader.Begin(file); err != nil {
		_ = file.Close()
		return nil, err
	}

	return func(ctx context.Context) (string, error) {
		defer func() { _ = file.Close() }()

		ref, err := f.uploader.Run(ctx, file)
		if err != nil {
			return "", err
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		if f.epoch != epoch {
			f.log.Info(ctx, "editor reset during upload, video not attached", "ref", ref)
			return ref, nil
		}
		f.draft = f.draft.SetVideo(ref)
		return ref, nil
	}, nil
}

// Publish validates the draft and issues exactly one create or update call.
// After a successful create the draft and editor are reset.
func (f *postForm) Publish(ctx context.Context) (*models.Post, error) {
	if f.uploader.Pending() {
		return nil, common.ErrUploadInProgress
	}

	d := f.Draft()
	if err := d.Validate(); err != nil {
		return nil, err
	}

	editing := d.Editing()
	payload := d.Payload(editing)
	if err := rewind(payload.ImageFile); err != nil {
		return nil, fmt.Errorf("%w: featured image: %w", common.ErrMutation, err)
	}

	if editing {
		p, err := f.client.UpdatePost(ctx, d.ID, payload)
		if err != nil {
			f.log.Warn(ctx, "update failed", "id", d.ID, "error", err)
			return nil, err
		}
		f.log.Info(ctx, "post updated", "id", d.ID)
		return p, nil
	}

	p, err := f.client.CreatePost(ctx, payload)
	if err != nil {
		f.log.Warn(ctx, "create failed", "error", err)
		return nil, err
	}
	f.log.Info(ctx, "post created", "id", p.ID)

	f.mu.Lock()
	f.resetLocked()
	f.mu.Unlock()
	return p, nil
}

// rewind seeks a picked file back to its start so a retried publish sends
// the whole image.
func rewind(file *models.LocalFile) error {
	if file == nil {
		return nil
	}
	if s, ok := file.Reader.(io.Seeker); ok {
		_, err := s.Seek(0, io.SeekStart)
		return err
	}
	return nil
}
