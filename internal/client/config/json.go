package config

import (
	"os"

	"github.com/dmitrijs2005/postdesk/internal/flagx"
	"github.com/dmitrijs2005/postdesk/internal/timex"
	"github.com/goccy/go-json"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so they may be written as "30s" or integer nanoseconds.
// Absent or empty fields leave the current Config value untouched.
type JsonConfig struct {
	APIBaseURL     string          `json:"api_base_url"`
	APIKey         string          `json:"api_key"`
	PageSize       int             `json:"page_size"`
	MediaBaseURL   string          `json:"media_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       string          `json:"log_level"`
	LogFormat      string          `json:"log_format"`
	Signer         string          `json:"signer"`
	S3             struct {
		Region    string `json:"region"`
		Bucket    string `json:"bucket"`
		Endpoint  string `json:"endpoint"`
		AccessKey string `json:"access_key"`
		SecretKey string `json:"secret_key"`
		KeyPrefix string `json:"key_prefix"`
	} `json:"s3"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config
// (or $POSTDESK_CONFIG). It panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.APIBaseURL, jc.APIBaseURL)
	overlay(&cfg.APIKey, jc.APIKey)
	overlay(&cfg.MediaBaseURL, jc.MediaBaseURL)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogFormat, jc.LogFormat)
	overlay(&cfg.Signer, jc.Signer)
	overlay(&cfg.S3Region, jc.S3.Region)
	overlay(&cfg.S3Bucket, jc.S3.Bucket)
	overlay(&cfg.S3BaseEndpoint, jc.S3.Endpoint)
	overlay(&cfg.S3AccessKey, jc.S3.AccessKey)
	overlay(&cfg.S3SecretKey, jc.S3.SecretKey)
	overlay(&cfg.S3KeyPrefix, jc.S3.KeyPrefix)

	if jc.PageSize != 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
