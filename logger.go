package broadphase

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with broadphase-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// WithVoxelSize adds a voxel_size field to the logger.
func (l *Logger) WithVoxelSize(size float64) *Logger {
	return &Logger{
		Logger: l.Logger.With("voxel_size", size),
	}
}

// LogBuild logs a completed or failed build.
func (l *Logger) LogBuild(continuous bool, info BuildInfo, elapsed time.Duration, err error) {
	if err != nil {
		l.Error("build failed",
			"continuous", continuous,
			"vertices", info.Vertices,
			"edges", info.Edges,
			"faces", info.Faces,
			"error", err,
		)
		return
	}
	l.Debug("build completed",
		"continuous", continuous,
		"vertices", info.Vertices,
		"edges", info.Edges,
		"faces", info.Faces,
		"voxels", info.Counts,
		"buckets", info.Buckets,
		"elapsed", elapsed,
	)
}

// LogCandidates logs a mesh candidate query.
func (l *Logger) LogCandidates(stats CandidateStats, elapsed time.Duration, err error) {
	if err != nil {
		l.Error("candidate query failed",
			"radius", stats.Radius,
			"error", err,
		)
		return
	}
	l.Debug("candidate query completed",
		"radius", stats.Radius,
		"vv", stats.VV,
		"ev", stats.EV,
		"ee", stats.EE,
		"fv", stats.FV,
		"elapsed", elapsed,
	)
}
