package logger

import (
	"log/slog"
	"strings"
)

// New builds the process-wide logger with the structured stdout handler.
func New(level string) *slog.Logger {
	return slog.New(NewStructuredHandler(parseLevel(level)))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
