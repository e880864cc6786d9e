package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	calls []string
}

func (f *fakeExec) rec(name string, args ...string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return nil
}

func (f *fakeExec) List(ctx context.Context) error                 { return f.rec("list") }
func (f *fakeExec) NextPage(ctx context.Context) error             { return f.rec("next") }
func (f *fakeExec) PrevPage(ctx context.Context) error             { return f.rec("prev") }
func (f *fakeExec) Page(ctx context.Context, arg string) error     { return f.rec("page", arg) }
func (f *fakeExec) Search(ctx context.Context, arg string) error   { return f.rec("search", arg) }
func (f *fakeExec) Category(ctx context.Context, arg string) error { return f.rec("category", arg) }
func (f *fakeExec) Apply(ctx context.Context) error                { return f.rec("apply") }
func (f *fakeExec) Categories(ctx context.Context) error           { return f.rec("categories") }
func (f *fakeExec) Show(ctx context.Context, arg string) error     { return f.rec("show", arg) }
func (f *fakeExec) Delete(ctx context.Context, arg string) error   { return f.rec("delete", arg) }
func (f *fakeExec) New(ctx context.Context) error                  { return f.rec("new") }
func (f *fakeExec) Edit(ctx context.Context, arg string) error     { return f.rec("edit", arg) }
func (f *fakeExec) Title(ctx context.Context, arg string) error    { return f.rec("title", arg) }
func (f *fakeExec) Body(ctx context.Context, arg string) error     { return f.rec("body", arg) }
func (f *fakeExec) Tag(ctx context.Context, arg string) error      { return f.rec("tag", arg) }
func (f *fakeExec) Untag(ctx context.Context, arg string) error    { return f.rec("untag", arg) }
func (f *fakeExec) Cat(ctx context.Context, arg string) error      { return f.rec("cat", arg) }
func (f *fakeExec) DropCat(ctx context.Context, arg string) error  { return f.rec("dropcat", arg) }
func (f *fakeExec) Image(ctx context.Context, arg string) error    { return f.rec("image", arg) }
func (f *fakeExec) NoImage(ctx context.Context) error              { return f.rec("noimage") }
func (f *fakeExec) Video(ctx context.Context, arg string) error    { return f.rec("video", arg) }
func (f *fakeExec) NoVideo(ctx context.Context) error              { return f.rec("novideo") }
func (f *fakeExec) ShowDraft(ctx context.Context) error            { return f.rec("draft") }
func (f *fakeExec) Publish(ctx context.Context) error              { return f.rec("publish") }

func silence(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		printed = append(printed, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &printed
}

func TestRunREPL_Dispatch(t *testing.T) {
	silence(t)

	input := strings.Join([]string{
		"help",
		"list",
		"n",
		"prev",
		"page 3",
		"search  machine learning ",
		"category none",
		"apply",
		"categories",
		"show 12",
		"",
		"new",
		"title Hello world",
		"body <p>Hi</p>",
		"tag ml",
		"untag ml",
		"cat 1",
		"dropcat 2",
		"image cover.png",
		"noimage",
		"video clip.mp4",
		"novideo",
		"draft",
		"publish",
		"edit 7",
		"delete 7",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "[s]" }, rdr(input))

	require.Equal(t, []string{
		"list", "next", "prev", "page 3", "search machine learning", "category none",
		"apply", "categories", "show 12",
		"new", "title Hello world", "body <p>Hi</p>", "tag ml", "untag ml", "cat 1", "dropcat 2",
		"image cover.png", "noimage", "video clip.mp4", "novideo", "draft", "publish",
		"edit 7", "delete 7",
	}, exec.calls, "commands after exit must not run")
}

func TestRunREPL_UnknownAndEOF(t *testing.T) {
	printed := silence(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "[s]" }, rdr("foobar\nlist"))

	require.Equal(t, []string{"list"}, exec.calls, "last line without newline still runs")
	require.Contains(t, *printed, "Unknown command: foobar")
}
