// Package config provides configuration management for tradestats.
// It layers built-in defaults, an optional YAML file and environment
// variables, then validates the result.
//
// # Configuration Sources
//
// Sources are applied in this order, later ones overriding earlier ones:
//
//	1. Default() values
//	2. config.yaml or configs/config.yaml, when present
//	3. Environment variables prefixed with TRADESTATS_
//
// # Environment Variables
//
// Nested sections map to underscore-separated names:
//
//	TRADESTATS_SERVER_PORT=8080
//	TRADESTATS_SECURITY_RATE_LIMIT_RPS=10
//	TRADESTATS_LOGGING_LEVEL=debug
//	TRADESTATS_ANALYSIS_TIMEZONE=Europe/London
//	TRADESTATS_UPLOAD_MAX_BYTES=10485760
//	TRADESTATS_EXPORT_FORMAT=xlsx
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
