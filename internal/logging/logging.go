// Package logging configures the process-wide slog logger and provides the
// structured records versestats emits: finished dimensions, unresolved
// morphology and degenerate statistics.
//
// Records go to stderr so that command output on stdout stays clean.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/FocuswithJustin/versestats/core/errors"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// RunIDKey is the context key for analysis run IDs.
const RunIDKey ContextKey = "run_id"

// Level represents a log level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var slogLevels = map[Level]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// Format represents a log output format.
type Format int

const (
	FormatJSON Format = iota
	FormatText
)

var defaultLogger *slog.Logger

func init() {
	InitLogger(LevelInfo, FormatText)
}

// ParseLevel converts a level name ("debug", "info", "warn", "error").
// The empty string means info.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, errors.NewValidation("log-level", s, "must be one of debug, info, warn, error")
}

// ParseFormat converts a format name ("json", "text").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "text", "":
		return FormatText, nil
	}
	return FormatText, errors.NewValidation("log-format", s, "must be json or text")
}

// InitLogger installs the default logger writing to stderr.
func InitLogger(level Level, format Format) {
	InitLoggerTo(os.Stderr, level, format)
}

// InitLoggerTo installs the default logger writing to w. Unknown levels
// fall back to info. Timestamps are RFC3339.
func InitLoggerTo(w io.Writer, level Level, format Format) {
	sl, ok := slogLevels[level]
	if !ok {
		sl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{
		Level: sl,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	}
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	runID, _ := ctx.Value(RunIDKey).(string)
	return runID
}

// LoggerFromContext returns the default logger, tagged with the run ID
// when ctx carries one.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if runID := GetRunID(ctx); runID != "" {
		return defaultLogger.With("run_id", runID)
	}
	return defaultLogger
}

// InfoContext logs an info message with the run ID from ctx.
func InfoContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).Info(msg, args...)
}

func emit(ctx context.Context, level slog.Level, msg string, fields, extra []any) {
	LoggerFromContext(ctx).Log(ctx, level, msg, append(fields, extra...)...)
}

// Dimension logs a finished aggregation of one dimension at one scope.
func Dimension(ctx context.Context, name, scope string, groups, keys int, duration time.Duration, args ...any) {
	emit(ctx, slog.LevelDebug, "dimension_complete", []any{
		"dimension", name,
		"scope", scope,
		"groups", groups,
		"keys", keys,
		"duration_ms", duration.Milliseconds(),
	}, args)
}

// Unresolved reports tokens the morphology port could not resolve.
// Nothing is logged when count is zero.
func Unresolved(ctx context.Context, kind string, count, tokens int, args ...any) {
	if count == 0 {
		return
	}
	emit(ctx, slog.LevelWarn, "morphology_unresolved", []any{
		"kind", kind,
		"unresolved", count,
		"tokens", tokens,
	}, args)
}

// Degenerate logs a statistic that could not be computed for a group.
func Degenerate(ctx context.Context, component, group, reason string, args ...any) {
	emit(ctx, slog.LevelInfo, "degenerate_statistic", []any{
		"component", component,
		"group", group,
		"reason", reason,
	}, args)
}
