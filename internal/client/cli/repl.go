package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
// arg is the rest of the input line after the command, trimmed.
type execIface interface {
	List(ctx context.Context) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	Page(ctx context.Context, arg string) error
	Search(ctx context.Context, arg string) error
	Category(ctx context.Context, arg string) error
	Apply(ctx context.Context) error
	Categories(ctx context.Context) error
	Show(ctx context.Context, arg string) error
	Delete(ctx context.Context, arg string) error

	New(ctx context.Context) error
	Edit(ctx context.Context, arg string) error
	Title(ctx context.Context, arg string) error
	Body(ctx context.Context, arg string) error
	Tag(ctx context.Context, arg string) error
	Untag(ctx context.Context, arg string) error
	Cat(ctx context.Context, arg string) error
	DropCat(ctx context.Context, arg string) error
	Image(ctx context.Context, arg string) error
	NoImage(ctx context.Context) error
	Video(ctx context.Context, arg string) error
	NoVideo(ctx context.Context) error
	ShowDraft(ctx context.Context) error
	Publish(ctx context.Context) error
}

const helpText = `Available commands:
  list | next | prev | page N        browse posts
  search TEXT | category ID|none     set filter inputs
  apply                              apply the filter (empty filter = page 1)
  categories                         list categories
  show ID | delete ID                inspect or delete a post
  new | edit ID                      start a new draft or edit a post
  title [TEXT] | body [HTML]         set draft text (prompts when empty)
  tag T | untag T                    add or remove a tag
  cat ID | dropcat ID                toggle a category, or remove it from the list
  image PATH | noimage               set or clear the featured image
  video PATH | novideo               upload (in background) or clear the video
  draft                              show the draft
  publish                            create or update the post
  exit | quit                        leave the program`

// runREPL starts a simple read–eval–print loop for the PostDesk CLI.
//
// It reads a line from reader, splits off the first token as the command and
// dispatches to methods on 'a' with the rest of the line as argument. Unknown
// commands are reported back to the user. The loop exits on EOF or when the
// user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers notify
// the user themselves. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("postdesk %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)
		case "n", "next":
			_ = a.NextPage(ctx)
		case "p", "prev":
			_ = a.PrevPage(ctx)
		case "page":
			_ = a.Page(ctx, arg)
		case "search":
			_ = a.Search(ctx, arg)
		case "category":
			_ = a.Category(ctx, arg)
		case "apply":
			_ = a.Apply(ctx)
		case "categories":
			_ = a.Categories(ctx)
		case "show":
			_ = a.Show(ctx, arg)
		case "delete":
			_ = a.Delete(ctx, arg)

		case "new":
			_ = a.New(ctx)
		case "edit":
			_ = a.Edit(ctx, arg)
		case "title":
			_ = a.Title(ctx, arg)
		case "body":
			_ = a.Body(ctx, arg)
		case "tag":
			_ = a.Tag(ctx, arg)
		case "untag":
			_ = a.Untag(ctx, arg)
		case "cat":
			_ = a.Cat(ctx, arg)
		case "dropcat":
			_ = a.DropCat(ctx, arg)
		case "image":
			_ = a.Image(ctx, arg)
		case "noimage":
			_ = a.NoImage(ctx)
		case "video":
			_ = a.Video(ctx, arg)
		case "novideo":
			_ = a.NoVideo(ctx)
		case "draft":
			_ = a.ShowDraft(ctx)
		case "publish":
			_ = a.Publish(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
