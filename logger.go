package kmeanslab

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with session-specific helpers.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogGenerate logs a dataset generation.
func (l *Logger) LogGenerate(n, blobs int, err error) {
	if err != nil {
		l.Error("generate failed",
			"n", n,
			"blobs", blobs,
			"error", err,
		)
	} else {
		l.Debug("dataset generated",
			"n", n,
			"blobs", blobs,
		)
	}
}

// LogStep logs one step event.
func (l *Logger) LogStep(iteration int, loss float64, converged bool, reseeded int, err error) {
	if err != nil {
		l.Error("step failed",
			"error", err,
		)
		return
	}
	if reseeded > 0 {
		l.Warn("empty clusters re-seeded",
			"iteration", iteration,
			"reseeded", reseeded,
		)
	}
	l.Debug("step completed",
		"iteration", iteration,
		"loss", loss,
		"converged", converged,
	)
}

// LogReset logs a reset or K change.
func (l *Logger) LogReset(k int, err error) {
	if err != nil {
		l.Error("reset failed",
			"k", k,
			"error", err,
		)
	} else {
		l.Debug("run state reset",
			"k", k,
		)
	}
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(op, name string, size int, err error) {
	if err != nil {
		l.Error("snapshot failed",
			"op", op,
			"name", name,
			"error", err,
		)
	} else {
		l.Info("snapshot completed",
			"op", op,
			"name", name,
			"bytes", size,
		)
	}
}
