package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/common"
	"github.com/dmitrijs2005/lifedash/internal/filex"
	"github.com/dmitrijs2005/lifedash/internal/logging"
)

// Config holds runtime settings for the lifedash CLI.
//
// Fields:
//   - APIBaseURL: root of the REST API, e.g. http://localhost:8080/api.
//   - RequestTimeout: per-request bound; 0 means no timeout.
//   - CacheDir: where the SQLite snapshot cache lives.
//   - LogLevel, LogBackend: see logging.New.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	CacheDir       string
	LogLevel       string
	LogBackend     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080/api"
	c.RequestTimeout = 0
	c.CacheDir = filex.UserCacheDir(common.AppName)
	c.LogLevel = "info"
	c.LogBackend = logging.BackendLogrus
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON, .env/environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseEnv(cfg, ".env")
	parseFlags(cfg, os.Args[1:])
	return cfg
}
