package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/common"
	"github.com/joho/godotenv"
)

const (
	EnvAPIURL         = common.EnvPrefix + "API_URL"
	EnvRequestTimeout = common.EnvPrefix + "REQUEST_TIMEOUT"
	EnvCacheDir       = common.EnvPrefix + "CACHE_DIR"
	EnvLogLevel       = common.EnvPrefix + "LOG_LEVEL"
	EnvLogBackend     = common.EnvPrefix + "LOG_BACKEND"
)

// parseEnv overlays Config from dotenv files and the process environment.
// Missing dotenv files are skipped; malformed ones and bad values panic.
func parseEnv(cfg *Config, dotenvFiles ...string) {
	fromFile := map[string]string{}
	for _, f := range dotenvFiles {
		vals, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			panic(fmt.Errorf("read %s: %w", f, err))
		}
		for k, v := range vals {
			fromFile[k] = v
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fromFile[key]
		return v, ok
	}

	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := lookup(EnvRequestTimeout); ok && v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvRequestTimeout, err))
		}
		cfg.RequestTimeout = d
	}
	if v, ok := lookup(EnvCacheDir); ok && v != "" {
		cfg.CacheDir = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvLogBackend); ok && v != "" {
		cfg.LogBackend = v
	}
}

// parseTimeout accepts a Go duration ("15s") or a whole number of seconds.
func parseTimeout(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}
