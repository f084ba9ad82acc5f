// Package logging builds the slog loggers shared by the api and worker
// binaries. Both emit JSON lines to stdout tagged with the app name and the
// process role so log aggregation can split them.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const appName = "lease-engine"

// NewJSONLogger returns a JSON logger for one process role ("api", "worker").
func NewJSONLogger(service, level string) *slog.Logger {
	return newJSONLogger(os.Stdout, service, level)
}

func newJSONLogger(w io.Writer, service, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler).With("app", appName, "service", service)
}

// parseLevel maps the configured level string to a slog level, defaulting to
// info on anything unrecognized rather than failing startup.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
