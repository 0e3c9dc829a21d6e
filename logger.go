package icarus

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with pager-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithPageSize adds a page_size field to the logger.
func (l *Logger) WithPageSize(pageSize int) *Logger {
	return &Logger{
		Logger: l.Logger.With("page_size", pageSize),
	}
}

// LogPageLoad logs the materialization of a single page.
func (l *Logger) LogPageLoad(ctx context.Context, page, size int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "page load failed",
			"page", page,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "page loaded",
			"page", page,
			"size", size,
			"elapsed", elapsed,
		)
	}
}

// LogPrefetch logs a prefetch run.
func (l *Logger) LogPrefetch(ctx context.Context, requested, loaded int, err error) {
	if err != nil {
		l.WarnContext(ctx, "prefetch aborted",
			"requested", requested,
			"loaded", loaded,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "prefetch completed",
			"requested", requested,
			"loaded", loaded,
		)
	}
}

// LogEviction logs a page dropped from the cache.
func (l *Logger) LogEviction(page int, bytes int64) {
	l.Debug("page evicted",
		"page", page,
		"bytes", bytes,
	)
}
