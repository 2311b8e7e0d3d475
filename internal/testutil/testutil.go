// Package testutil provides shared fixtures and a test logger.
package testutil

import (
	_ "embed"
	"log/slog"
	"testing"
)

//go:embed testdata/clickhouse.json
var dialectJSON []byte

// DialectJSON returns a small but complete ClickHouse dialect document:
// plain, aggregate and aliased functions, aliased data types, formats of every
// direction, and both kinds of settings.
func DialectJSON() []byte {
	out := make([]byte, len(dialectJSON))
	copy(out, dialectJSON)
	return out
}

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
