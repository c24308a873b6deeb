// Package logging builds the shared slog setup for both services.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// NewJSONLogger returns a JSON logger tagged with the service name so
// api and worker lines are distinguishable in a merged stream.
// Unknown level strings fall back to info.
func NewJSONLogger(service, level string) *slog.Logger {
	parsed, ok := levelNames[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		parsed = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parsed,
	})
	return slog.New(handler).With("service", service)
}
