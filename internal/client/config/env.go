package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names read by parseEnv.
const (
	EnvAPIBaseURL     = "POSTDESK_API_BASE_URL"
	EnvAPIKey         = "POSTDESK_API_KEY"
	EnvPageSize       = "POSTDESK_PAGE_SIZE"
	EnvMediaBaseURL   = "POSTDESK_MEDIA_BASE_URL"
	EnvRequestTimeout = "POSTDESK_REQUEST_TIMEOUT"
	EnvLogLevel       = "POSTDESK_LOG_LEVEL"
	EnvLogFormat      = "POSTDESK_LOG_FORMAT"
	EnvSigner         = "POSTDESK_SIGNER"
	EnvS3Region       = "POSTDESK_S3_REGION"
	EnvS3Bucket       = "POSTDESK_S3_BUCKET"
	EnvS3BaseEndpoint = "POSTDESK_S3_ENDPOINT"
	EnvS3AccessKey    = "POSTDESK_S3_ACCESS_KEY"
	EnvS3SecretKey    = "POSTDESK_S3_SECRET_KEY"
	EnvS3KeyPrefix    = "POSTDESK_S3_KEY_PREFIX"
)

// loadDotEnv is a test seam for godotenv.Load.
var loadDotEnv = func() error { return godotenv.Load() }

// parseEnv overlays cfg with POSTDESK_* variables. A .env file in the working
// directory is loaded first if present; variables already set in the process
// environment win over it. Unparseable numbers and durations are ignored.
func parseEnv(cfg *Config) {
	_ = loadDotEnv()

	setString(&cfg.APIBaseURL, EnvAPIBaseURL)
	setString(&cfg.APIKey, EnvAPIKey)
	setString(&cfg.MediaBaseURL, EnvMediaBaseURL)
	setString(&cfg.LogLevel, EnvLogLevel)
	setString(&cfg.LogFormat, EnvLogFormat)
	setString(&cfg.Signer, EnvSigner)
	setString(&cfg.S3Region, EnvS3Region)
	setString(&cfg.S3Bucket, EnvS3Bucket)
	setString(&cfg.S3BaseEndpoint, EnvS3BaseEndpoint)
	setString(&cfg.S3AccessKey, EnvS3AccessKey)
	setString(&cfg.S3SecretKey, EnvS3SecretKey)
	setString(&cfg.S3KeyPrefix, EnvS3KeyPrefix)

	if v := lookup(EnvPageSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PageSize = n
		}
	}
	if v := lookup(EnvRequestTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}

func lookup(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func setString(dst *string, key string) {
	if v := lookup(key); v != "" {
		*dst = v
	}
}
