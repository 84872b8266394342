package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the REST API (default from Config)
//	-t int      request timeout in seconds (default from Config)
//	-d string   snapshot cache directory (default from Config)
//	-l string   log level (default from Config)
//
// Note: args are filtered with flagx.FilterArgs to the flags handled here,
// to avoid interference with other components.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the dashboard API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds, 0 = none)")
	fs.StringVar(&cfg.CacheDir, "d", cfg.CacheDir, "snapshot cache directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if flagx.HasFlag(args, "-t") {
		cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	}
}
