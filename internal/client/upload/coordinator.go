package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/postdesk/internal/client/models"
	"github.com/dmitrijs2005/postdesk/internal/common"
	"github.com/dmitrijs2005/postdesk/internal/logging"
	"github.com/dmitrijs2005/postdesk/internal/netx"
	"github.com/google/uuid"
)

// fallbackFileName is used when sanitizing leaves nothing of the original name.
const fallbackFileName = "upload"

// Signer issues a pre-signed URL accepting one PUT of fileName.
type Signer interface {
	PresignUpload(ctx context.Context, fileName, fileType string) (string, error)
}

// Putter sends raw bytes to a pre-signed URL.
type Putter interface {
	Put(ctx context.Context, url string, body io.Reader, size int64, contentType string) error
}

// Hooks are the lifecycle signals reported to the owner of a Coordinator.
// Any of them may be nil. They run on the uploading goroutine, outside the
// coordinator lock.
type Hooks struct {
	OnStart   func()
	OnSuccess func(ref string)
	OnFailure func(err error)
}

// Coordinator runs one video upload at a time:
// Idle -> Signing -> Uploading -> Done | Failed.
type Coordinator struct {
	signer Signer
	putter Putter
	hooks  Hooks
	log    logging.Logger

	mu    sync.Mutex
	state State
	ref   string
	err   error
}

func NewCoordinator(signer Signer, putter Putter, log logging.Logger, hooks Hooks) *Coordinator {
	if log == nil {
		log = logging.Nop()
	}
	return &Coordinator{
		signer: signer,
		putter: putter,
		hooks:  hooks,
		log:    log,
	}
}

// SetHooks replaces the lifecycle hooks. It must not be called while an
// upload is pending.
func (c *Coordinator) SetHooks(h Hooks) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = h
}

// Upload signs, uploads and resolves f, returning the canonical reference of
// the stored object. A call made while another upload is pending fails with
// common.ErrUploadInProgress and leaves the running upload untouched.
func (c *Coordinator) Upload(ctx context.Context, f *models.LocalFile) (string, error) {
	if err := c.Begin(f); err != nil {
		return "", err
	}
	return c.Run(ctx, f)
}

// Begin checks f and moves the coordinator to Signing, so Pending reports
// true as soon as Begin returns. The transfer itself is done by Run.
func (c *Coordinator) Begin(f *models.LocalFile) error {
	c.mu.Lock()
	if c.state.Pending() {
		c.mu.Unlock()
		return common.ErrUploadInProgress
	}

	if f == nil {
		return c.failLocked(common.ErrNoFile)
	}
	if !f.IsVideo() {
		return c.failLocked(fmt.Errorf("%w: %w: %s", common.ErrSigning, common.ErrUnsupportedMedia, f.ContentType))
	}

	c.state, c.ref, c.err = Signing, "", nil
	hooks := c.hooks
	c.mu.Unlock()

	if hooks.OnStart != nil {
		hooks.OnStart()
	}
	return nil
}

// Run signs and uploads f after a successful Begin.
func (c *Coordinator) Run(ctx context.Context, f *models.LocalFile) (string, error) {
	if c.State() != Signing {
		return "", fmt.Errorf("%w: upload not started", common.ErrNotReady)
	}

	log := c.log.With("upload_id", uuid.NewString(), "file", f.Name)

	name := SanitizeFileName(f.Name)
	if name == "" {
		name = fallbackFileName
	}

	log.Debug(ctx, "requesting pre-signed url", "sanitized", name, "content_type", f.ContentType)
	signedURL, err := c.signer.PresignUpload(ctx, name, f.ContentType)
	if err != nil {
		if !errors.Is(err, common.ErrSigning) {
			err = fmt.Errorf("%w: %w", common.ErrSigning, err)
		}
		return "", c.fail(ctx, log, err)
	}
	if signedURL == "" {
		return "", c.fail(ctx, log, fmt.Errorf("%w: no url returned", common.ErrSigning))
	}

	c.setState(Uploading)
	log.Debug(ctx, "uploading", "size", f.Size)
	if err := c.putter.Put(ctx, signedURL, f.Reader, f.Size, f.ContentType); err != nil {
		if !errors.Is(err, common.ErrUpload) {
			err = fmt.Errorf("%w: %w", common.ErrUpload, err)
		}
		return "", c.fail(ctx, log, err)
	}

	ref := netx.StripQuery(signedURL)

	c.mu.Lock()
	c.state, c.ref = Done, ref
	hooks := c.hooks
	c.mu.Unlock()

	log.Info(ctx, "upload complete", "ref", ref)
	if hooks.OnSuccess != nil {
		hooks.OnSuccess(ref)
	}
	return ref, nil
}

// failLocked records err while c.mu is held, releases the lock and fires
// OnFailure.
func (c *Coordinator) failLocked(err error) error {
	c.state, c.ref, c.err = Failed, "", err
	hooks := c.hooks
	c.mu.Unlock()

	if hooks.OnFailure != nil {
		hooks.OnFailure(err)
	}
	return err
}

func (c *Coordinator) fail(ctx context.Context, log logging.Logger, err error) error {
	log.Warn(ctx, "upload failed", "error", err)
	c.mu.Lock()
	return c.failLocked(err)
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

// Reference returns the resolved reference of the last upload, or
// common.ErrNotReady when no upload has completed.
func (c *Coordinator) Reference() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Done:
		return c.ref, nil
	case Failed:
		return "", fmt.Errorf("%w: %w", common.ErrNotReady, c.err)
	default:
		return "", common.ErrNotReady
	}
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending reports whether an upload is in flight.
func (c *Coordinator) Pending() bool {
	return c.State().Pending()
}

// Err returns the failure of the last upload, if it failed.
func (c *Coordinator) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Reset returns the coordinator to Idle, forgetting the last outcome.
func (c *Coordinator) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Pending() {
		return common.ErrUploadInProgress
	}
	c.state, c.ref, c.err = Idle, "", nil
	return nil
}
