// Package config loads runtime configuration for the lifedash CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. A .env file in the working directory, read with godotenv, then the
//     process environment; real environment variables win over .env lines.
//  4. Command-line flags (see parseFlags), which override everything.
//
// Supported flags
//
//	-a string   base URL of the dashboard REST API
//	-t int      request timeout in seconds (0 disables it)
//	-d string   directory for the local snapshot cache
//	-l string   log level (debug, info, warn, error)
//
// Environment
//
//	LIFEDASH_API_URL, LIFEDASH_REQUEST_TIMEOUT ("15s" or seconds),
//	LIFEDASH_CACHE_DIR, LIFEDASH_LOG_LEVEL, LIFEDASH_LOG_BACKEND
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "15s" or integer
// nanoseconds. Absent keys leave earlier values alone:
//
//	{
//	  "api_base_url": "http://localhost:8080/api",
//	  "request_timeout": "15s",
//	  "cache_dir": "/var/cache/lifedash",
//	  "log_level": "debug",
//	  "log_backend": "slog"
//	}
package config
