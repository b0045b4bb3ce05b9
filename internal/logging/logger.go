// Package logging configures structured diagnostics using log/slog.
//
// Diagnostics are separate from the console report: they go to the writer
// passed to Setup (stderr in the CLI) and default to warnings only, so a
// successful run is silent there.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Levels and formats accepted by Setup.
var (
	Levels  = []string{"debug", "info", "warn", "error"}
	Formats = []string{"text", "json"}
)

// Setup builds a logger for level and format and installs it as the slog
// default.
//
// Level values: "debug", "info", "warn", "error" (default: "warn")
// Format values: "text", "json" (default: "text")
func Setup(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// ValidLevel reports whether level is accepted by Setup.
func ValidLevel(level string) bool { return contains(Levels, strings.ToLower(level)) }

// ValidFormat reports whether format is accepted by Setup.
func ValidFormat(format string) bool { return contains(Formats, strings.ToLower(format)) }

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

type runKey struct{}

// NewRunID returns a fresh identifier for one invocation.
func NewRunID() string { return uuid.NewString() }

// WithRunID stores id in ctx so FromContext can tag log entries with it.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runKey{}, id)
}

// RunID returns the run id stored in ctx, if any.
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runKey{}).(string)
	return id
}

// FromContext returns the default logger enriched with the run id in ctx.
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()
	if id := RunID(ctx); id != "" {
		logger = logger.With("run_id", id)
	}
	return logger
}

// WithFields returns a logger from ctx with additional structured fields.
//
// Usage:
//
//	log := logging.WithFields(ctx, "stage", "transform", "engine", j.Name())
//	log.Debug("join finished", "rows", out.Len())
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
