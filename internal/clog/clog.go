// Package clog provides the structured logger shared by the daemon, the
// job runner, and the lifecycle module.
package clog

import (
	"log/slog"
	"os"
	"sync"
)

var (
	defaultLogger *slog.Logger
	mu            sync.RWMutex
)

func init() {
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})).With(slog.String("component", "crond"))
}

// SetVerbose raises or lowers the default logger's level: verbose mode
// surfaces slog.LevelDebug (job launches, non-zero job exits, and each
// sleep between ticks), the default surfaces slog.LevelWarn only.
func SetVerbose(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("component", "crond"))
}

// Default returns the package's shared logger.
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// WithJob returns a logger annotated with a job's command, for log lines
// that report a single job's outcome.
func WithJob(command string) *slog.Logger {
	return Default().With(slog.String("job", command))
}

// WithPID returns a logger annotated with a child process ID.
func WithPID(pid int) *slog.Logger {
	return Default().With(slog.Int("pid", pid))
}
