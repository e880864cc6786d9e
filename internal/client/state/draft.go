package state

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/postdesk/internal/client/models"
	"github.com/dmitrijs2005/postdesk/internal/common"
	"github.com/dmitrijs2005/postdesk/internal/netx"
	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/copier"
)

// Draft is the post being authored. ID is empty until the post is persisted.
//
// The featured image is either a pending local file or a stored URL, never
// both. Video is always empty or the reference of a completed upload.
type Draft struct {
	ID         models.ID
	Title      string
	Body       string
	Tags       []string
	Categories []int64           `copier:"-"`
	ImageFile  *models.LocalFile `copier:"-"`
	ImageURL   string            `copier:"-"`
	Video      string            `copier:"-"`
}

func NewDraft() Draft {
	return Draft{Tags: []string{}, Categories: []int64{}}
}

// DraftFromPost hydrates a draft from a fetched post. Categories are
// flattened to ids and the video URL is reduced to its stored reference.
func DraftFromPost(p *models.Post) (Draft, error) {
	d := NewDraft()
	if p == nil {
		return d, nil
	}

	if err := copier.CopyWithOption(&d, p, copier.Option{DeepCopy: true}); err != nil {
		return NewDraft(), fmt.Errorf("hydrate draft: %w", err)
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	d.Categories = p.CategoryIDs()
	d.ImageURL = strings.TrimSpace(p.FeaturedImage)
	d.Video = netx.StripQuery(strings.TrimSpace(p.FeaturedVideo))
	return d, nil
}

// Editing reports whether the draft belongs to a persisted post.
func (d Draft) Editing() bool {
	return d.ID != ""
}

// AddTag appends the trimmed tag. Blank and already-present tags are ignored.
func (d Draft) AddTag(tag string) Draft {
	tag = strings.TrimSpace(tag)
	if tag == "" || slices.Contains(d.Tags, tag) {
		return d
	}
	d.Tags = append(slices.Clone(d.Tags), tag)
	return d
}

// RemoveTag drops tag by exact match.
func (d Draft) RemoveTag(tag string) Draft {
	d.Tags = slices.DeleteFunc(slices.Clone(d.Tags), func(t string) bool { return t == tag })
	return d
}

// ToggleCategory adds id to the selected set, or removes it when present.
func (d Draft) ToggleCategory(id int64) Draft {
	if slices.Contains(d.Categories, id) {
		return d.RemoveCategory(id)
	}
	d.Categories = append(slices.Clone(d.Categories), id)
	return d
}

// RemoveCategory drops id from the selected set if present.
func (d Draft) RemoveCategory(id int64) Draft {
	d.Categories = slices.DeleteFunc(slices.Clone(d.Categories), func(c int64) bool { return c == id })
	return d
}

func (d Draft) HasCategory(id int64) bool {
	return slices.Contains(d.Categories, id)
}

// SetImageFile selects a local image to send with the next save. It replaces
// any stored image URL.
func (d Draft) SetImageFile(f *models.LocalFile) Draft {
	d.ImageFile = f
	d.ImageURL = ""
	return d
}

// SetImageURL points the draft at an already stored image, dropping any
// pending file.
func (d Draft) SetImageURL(url string) Draft {
	d.ImageFile = nil
	d.ImageURL = strings.TrimSpace(url)
	return d
}

func (d Draft) ClearImage() Draft {
	d.ImageFile = nil
	d.ImageURL = ""
	return d
}

// SetVideo stores the reference of a completed upload. Any query string is
// dropped.
func (d Draft) SetVideo(ref string) Draft {
	d.Video = netx.StripQuery(strings.TrimSpace(ref))
	return d
}

func (d Draft) ClearVideo() Draft {
	d.Video = ""
	return d
}

type publishable struct {
	Title      string  `validate:"notblank"`
	Body       string  `validate:"richtext"`
	Categories []int64 `validate:"min=1"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("richtext", func(fl validator.FieldLevel) bool {
		return !IsBlankHTML(fl.Field().String())
	})
	return v
}

var fieldMessages = map[string]string{
	"Title":      "title is required",
	"Body":       "content is required",
	"Categories": "at least one category is required",
}

// Validate checks the publish requirements: a title, a non-blank body and
// at least one category. Failures wrap common.ErrValidation.
func (d Draft) Validate() error {
	err := validate.Struct(publishable{Title: d.Title, Body: d.Body, Categories: d.Categories})
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}

	msgs := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		if m, ok := fieldMessages[fe.Field()]; ok {
			msgs = append(msgs, m)
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(msgs, "; "))
}

// Payload builds the wire payload. When editing, a draft without image file
// or URL clears the stored image; an untouched URL leaves it unchanged.
func (d Draft) Payload(editing bool) *models.PostPayload {
	p := &models.PostPayload{
		Title:       d.Title,
		Body:        d.Body,
		Tags:        slices.Clone(d.Tags),
		CategoryIDs: slices.Clone(d.Categories),
		VideoKey:    netx.ObjectKey(d.Video),
	}

	switch {
	case d.ImageFile != nil:
		p.Image = models.ImageReplace
		p.ImageFile = d.ImageFile
	case d.ImageURL == "" && editing:
		p.Image = models.ImageClear
	default:
		p.Image = models.ImageUnchanged
	}
	return p
}
