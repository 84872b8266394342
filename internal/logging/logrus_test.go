package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestLogrus(t *testing.T, level logrus.Level) (*LogrusLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	l.SetLevel(level)
	return NewLogrusLogger(l), &buf
}

func TestLogrusLogger_LevelsAndFields(t *testing.T) {
	log, buf := newTestLogrus(t, logrus.DebugLevel)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	for _, s := range []string{
		"level=debug", "msg=dbg", "a=1",
		"level=info", "msg=inf", "b=2",
		"level=warning", "msg=wrn", "c=3",
		"level=error", "msg=err", "d=4",
	} {
		require.Contains(t, out, s)
	}
}

func TestLogrusLogger_WithAddsFields(t *testing.T) {
	log, buf := newTestLogrus(t, logrus.InfoLevel)

	log.With("store", "goals").Info(context.Background(), "fetched", "count", 3)

	out := buf.String()
	require.Contains(t, out, "store=goals")
	require.Contains(t, out, "count=3")
}

func TestLogrusLogger_RespectsLevel(t *testing.T) {
	log, buf := newTestLogrus(t, logrus.WarnLevel)

	log.Info(context.Background(), "hidden")
	require.Empty(t, buf.String())
}

func TestKVFields_OddArgs(t *testing.T) {
	f := kvFields([]any{"k", "v", "dangling"})
	require.Equal(t, "v", f["k"])
	require.Equal(t, "dangling", f["!BADKEY"])
}

func TestNew_SelectsBackend(t *testing.T) {
	var buf bytes.Buffer

	l := New(BackendSlog, "debug", &buf)
	_, ok := l.(*SlogLogger)
	require.True(t, ok)
	l.Debug(context.Background(), "visible")
	require.Contains(t, buf.String(), "msg=visible")

	buf.Reset()
	l = New("", "nonsense", &buf)
	_, ok = l.(*LogrusLogger)
	require.True(t, ok)
	l.Debug(context.Background(), "hidden")
	require.Empty(t, buf.String())
	l.Info(context.Background(), "shown")
	require.Contains(t, buf.String(), "shown")
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop()
	l.With("k", "v").Error(context.Background(), "nothing")
}
