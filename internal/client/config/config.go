package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	SignerAPI = "api"
	SignerS3  = "s3"
)

// Config holds runtime settings for the PostDesk CLI.
//
// Fields:
//   - APIBaseURL: root of the blog REST API, e.g. "https://api.example.com/".
//   - APIKey: opaque key sent as the API-Key header on mutating calls.
//   - PageSize: previews per page in paginated browse mode.
//   - MediaBaseURL: prefix used to display stored references that are bare keys.
//   - RequestTimeout: per-request timeout; zero keeps the transport default.
//   - Signer: where pre-signed upload URLs come from, "api" or "s3".
//   - S3*: direct-to-bucket presign settings, used only when Signer is "s3".
//   - EditPostID: post opened in the editor at startup, empty for a new post.
type Config struct {
	APIBaseURL     string
	APIKey         string
	PageSize       int
	MediaBaseURL   string
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string

	Signer         string
	S3Region       string
	S3Bucket       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	S3KeyPrefix    string

	EditPostID string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/"
	c.PageSize = 20
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.Signer = SignerAPI
	c.S3Region = "us-east-1"
	c.S3KeyPrefix = "videos/"
}

// Validate reports the first setting that makes the client unusable.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("api base url is required")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	switch c.Signer {
	case SignerAPI:
	case SignerS3:
		if c.S3Bucket == "" {
			return errors.New("s3 signer requires a bucket")
		}
	default:
		return fmt.Errorf("unknown signer %q", c.Signer)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including a .env file), JSON (if present) and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
