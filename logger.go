package lloyd

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with lloyd-specific context.
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
	return NewLogger(slog.DiscardHandler)
}

// WithDataset adds a dataset field to the logger.
func (l *Logger) WithDataset(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("dataset", name),
	}
}

// WithClusterSize adds a cluster_size field to the logger.
func (l *Logger) WithClusterSize(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("cluster_size", n),
	}
}

// LogIteration logs one reassign+iterate cycle.
func (l *Logger) LogIteration(ctx context.Context, s IterationStats) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", s.Iteration,
		"points", s.Points,
		"moved", s.Moved,
		"fingerprint", s.Fingerprint,
		"duration", s.Duration,
	)
}

// LogSnapshot logs a stored snapshot.
func (l *Logger) LogSnapshot(ctx context.Context, iteration int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"iteration", iteration,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "snapshot saved",
			"iteration", iteration,
		)
	}
}

// LogConverged logs the end of a run.
func (l *Logger) LogConverged(ctx context.Context, res *Result, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "run failed",
			"error", err,
		)
	case !res.Converged:
		l.WarnContext(ctx, "iteration limit reached before convergence",
			"iterations", res.Iterations,
			"clusters", len(res.Clusters),
		)
	default:
		l.InfoContext(ctx, "converged",
			"iterations", res.Iterations,
			"clusters", len(res.Clusters),
			"fingerprint", res.Fingerprint,
			"duration", res.Duration,
		)
	}
}
