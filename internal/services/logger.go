package services

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps LOG_LEVEL values onto slog levels, defaulting to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the process logger: JSON in production, text otherwise.
func NewLogger(service, level, env string) *slog.Logger {
	return NewLoggerWithWriter(os.Stdout, service, level, env)
}

// NewLoggerWithWriter is NewLogger writing to w.
func NewLoggerWithWriter(w io.Writer, service, level, env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.ToLower(env) == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", service)
}
