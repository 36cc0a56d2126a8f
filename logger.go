package swapmap

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with swapmap-specific helpers.
// Only structural events log: the Get path and the lock-free insert fast
// path never emit anything.
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

// LogPublish logs the publication of a new snapshot after a structural
// insert.
func (l *Logger) LogPublish(keys int) {
	l.Debug("snapshot published",
		"keys", keys,
	)
}

// LogDelete logs the publication of a new snapshot after a delete.
func (l *Logger) LogDelete(keys int) {
	l.Debug("key deleted",
		"keys", keys,
	)
}

// LogClear logs the reset of the store to an empty snapshot.
func (l *Logger) LogClear() {
	l.Debug("store cleared")
}
