package cli

import (
	"fmt"

	"github.com/dmitrijs2005/postdesk/internal/client/upload"
	"github.com/dmitrijs2005/postdesk/internal/common"
)

func (a *App) notify(msg string) {
	fmt.Fprintf(a.out, "* %s\n", msg)
}

// notifyErr shows the most specific message available: the server's
// message, else the error text, else fallback.
func (a *App) notifyErr(err error, fallback string) {
	fmt.Fprintf(a.out, "! %s\n", common.UserMessage(err, fallback))
}

func (a *App) uploadHooks() upload.Hooks {
	return upload.Hooks{
		OnStart: func() {
			a.notify("Video is uploading...")
		},
		OnSuccess: func(ref string) {
			a.notify("Video uploaded successfully!")
		},
		OnFailure: func(err error) {
			a.notifyErr(err, "Something went wrong during upload")
		},
	}
}
