package config

import (
	"flag"

	"github.com/dmitrijs2005/postdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-u string         API base URL
//	-k string         API key
//	-p int            page size
//	-m string         media base URL
//	-timeout duration request timeout (0 keeps the transport default)
//	-log-level string debug, info, warn, error
//	-signer string    api or s3
//	-e string         post ID to open for editing
//
// Arguments not listed above are filtered out with flagx.FilterArgs so that
// -c/-config and unrelated flags do not break parsing. It panics on invalid values.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-u", "-k", "-p", "-m", "-timeout", "-log-level", "-signer", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "u", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "API key for mutating requests")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "posts per page")
	fs.StringVar(&cfg.MediaBaseURL, "m", cfg.MediaBaseURL, "base URL for bare media keys")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.Signer, "signer", cfg.Signer, "pre-signed URL source: api or s3")
	fs.StringVar(&cfg.EditPostID, "e", cfg.EditPostID, "post ID to edit")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
