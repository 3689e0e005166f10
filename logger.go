package jsdata

import (
	"log/slog"
	"os"

	"github.com/ready-research/js-data/record"
)

// Logger wraps slog.Logger with collection-specific context.
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

// WithIndex adds an index name field to the logger.
func (l *Logger) WithIndex(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("index", name),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogAdd logs an add operation.
func (l *Logger) LogAdd(count int, err error) {
	if err != nil {
		l.Error("add failed",
			"count", count,
			"error", err,
		)
	} else {
		l.Debug("add completed",
			"count", count,
		)
	}
}

// LogRemove logs a remove operation.
func (l *Logger) LogRemove(id record.Value, removed bool, err error) {
	if err != nil {
		l.Error("remove failed",
			"id", id.String(),
			"error", err,
		)
	} else {
		l.Debug("remove completed",
			"id", id.String(),
			"removed", removed,
		)
	}
}

// LogRemoveAll logs a query-scoped remove operation.
func (l *Logger) LogRemoveAll(count int, err error) {
	if err != nil {
		l.Error("remove all failed",
			"count", count,
			"error", err,
		)
	} else {
		l.Debug("remove all completed",
			"count", count,
		)
	}
}

// LogQuery logs a query run.
func (l *Logger) LogQuery(index string, results int, err error) {
	if index == "" {
		index = "primary"
	}
	if err != nil {
		l.Error("query failed",
			"index", index,
			"error", err,
		)
	} else {
		l.Debug("query completed",
			"index", index,
			"results", results,
		)
	}
}

// LogCreateIndex logs the creation and backfill of a secondary index.
func (l *Logger) LogCreateIndex(name string, fields []string, records int, err error) {
	if err != nil {
		l.Error("create index failed",
			"index", name,
			"error", err,
		)
	} else {
		l.Info("index created",
			"index", name,
			"fields", fields,
			"records", records,
		)
	}
}

// LogUpdateIndexes logs a record re-index.
func (l *Logger) LogUpdateIndexes(id record.Value) {
	l.Debug("indexes updated",
		"id", id.String(),
	)
}
