// Package config loads runtime configuration for the PostDesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: POSTDESK_* variables, with a .env file loaded first.
//  3. Optional JSON file selected via -c/-config or $POSTDESK_CONFIG.
//  4. Command-line flags, which override earlier values.
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://api.example.com/",
//	  "api_key": "secret",
//	  "page_size": 20,
//	  "request_timeout": "30s",
//	  "signer": "s3",
//	  "s3": {"bucket": "media", "region": "eu-north-1"}
//	}
package config
