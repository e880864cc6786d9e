package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/postdesk/internal/client/client"
	"github.com/dmitrijs2005/postdesk/internal/client/config"
	"github.com/dmitrijs2005/postdesk/internal/client/models"
	"github.com/dmitrijs2005/postdesk/internal/client/services"
	"github.com/dmitrijs2005/postdesk/internal/client/state"
	"github.com/dmitrijs2005/postdesk/internal/client/upload"
	"github.com/dmitrijs2005/postdesk/internal/logging"
	"github.com/dmitrijs2005/postdesk/internal/netx"
)

type App struct {
	config *config.Config
	api    client.Client
	list   services.PostList
	form   services.PostForm
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer

	uploads sync.WaitGroup
}

// NewApp wires the API client, the upload coordinator and the services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	api := client.NewRESTClient(client.Options{
		BaseURL: c.APIBaseURL,
		APIKey:  c.APIKey,
		Timeout: c.RequestTimeout,
		Logger:  log,
	})

	signer, err := newSigner(ctx, c, api)
	if err != nil {
		return nil, err
	}

	a := &App{
		config: c,
		api:    api,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    &syncWriter{w: os.Stdout},
	}

	// Video PUTs are unbounded: large files must not hit the API timeout.
	coord := upload.NewCoordinator(signer, netx.NewUploader(0), log, a.uploadHooks())
	a.form = services.NewPostForm(api, coord, log)
	a.list = services.NewPostList(api, c.PageSize, log)
	return a, nil
}

func newSigner(ctx context.Context, c *config.Config, api client.Client) (upload.Signer, error) {
	if c.Signer != config.SignerS3 {
		return api, nil
	}
	s, err := upload.NewS3Signer(ctx, upload.S3Options{
		Region:       c.S3Region,
		Bucket:       c.S3Bucket,
		BaseEndpoint: c.S3BaseEndpoint,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
		KeyPrefix:    c.S3KeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 signer: %w", err)
	}
	return s, nil
}

// Run loads the session, renders the list and blocks in the REPL until the
// user exits or input ends. Background uploads are cancelled on exit.
func (a *App) Run(ctx context.Context, editID models.ID) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		a.uploads.Wait()
	}()

	fmt.Fprintln(a.out, "Welcome to PostDesk (type 'help' for commands)")

	if err := services.Bootstrap(ctx, a.list, a.form, editID, a.log); err != nil {
		a.notifyErr(err, "Failed to load session")
	}
	a.renderList(a.list.Snapshot())
	if editID != "" {
		a.renderDraft(a.form.Draft())
	}

	runREPL(ctx, a, a.status, a.reader)

	if a.form.UploadPending() {
		a.notify("Cancelling the video upload in progress")
	}
}

func (a *App) status() string {
	l := a.list.Snapshot()
	s := fmt.Sprintf("[%s", l.Mode)
	if l.Mode == state.Paginated {
		s += fmt.Sprintf(" %d", l.Page)
	}
	if d := a.form.Draft(); d.Editing() {
		s += " | editing " + d.ID.String()
	} else {
		s += " | new post"
	}
	if a.form.UploadPending() {
		s += " | uploading"
	}
	return s + "]"
}

// syncWriter serializes writes from background uploads and the REPL.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
