package cardsort

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/king54346/cardsort/deck"
	"github.com/king54346/cardsort/evaluate"
)

// Logger wraps slog.Logger with cardsort-specific helpers.
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
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithMode adds a pipeline mode field to the logger.
func (l *Logger) WithMode(mode Mode) *Logger {
	return &Logger{
		Logger: l.Logger.With("mode", mode.String()),
	}
}

// WithOrder adds the bucketing suit order to the logger.
func (l *Logger) WithOrder(order deck.Order) *Logger {
	names := make([]string, order.Len())
	for i := range names {
		names[i] = order.At(i).String()
	}
	return &Logger{
		Logger: l.Logger.With("order", strings.Join(names, "<")),
	}
}

// LogRun logs a finished pipeline run. Tag the logger with WithMode first.
func (l *Logger) LogRun(ctx context.Context, records int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sort failed",
			"records", records,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "sort completed",
		"records", records,
		"elapsed", elapsed,
	)
}

// LogEvaluate logs an evaluation.
func (l *Logger) LogEvaluate(ctx context.Context, parallel, sequential time.Duration, m evaluate.Metrics, err error) {
	if err != nil {
		l.WarnContext(ctx, "evaluation failed",
			"parallel", parallel,
			"sequential", sequential,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "evaluation completed",
		"speedup", m.Speedup,
		"theoretical_speedup", m.TheoreticalSpeedup,
		"efficiency", m.Efficiency,
	)
}
