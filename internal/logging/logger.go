// Package logging defines the structured, context-aware logger used across
// lifedash, with slog and logrus backends.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "goals fetched", "count", len(goals))
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

const (
	BackendLogrus = "logrus"
	BackendSlog   = "slog"
)

// New builds a Logger writing to w. Unknown backends fall back to logrus,
// unknown levels to info.
func New(backend, level string, w io.Writer) Logger {
	switch strings.ToLower(backend) {
	case BackendSlog:
		return NewSlogText(w, level)
	default:
		l := logrus.New()
		l.SetOutput(w)
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			lvl = logrus.InfoLevel
		}
		l.SetLevel(lvl)
		return NewLogrusLogger(l)
	}
}

// kvFields turns slog-style key/value args into logrus fields. A trailing
// key without a value is kept under "!BADKEY", as slog does.
func kvFields(args []any) logrus.Fields {
	fields := make(logrus.Fields, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			fields["!BADKEY"] = args[i]
			break
		}
		fields[fmt.Sprint(args[i])] = args[i+1]
	}
	return fields
}
