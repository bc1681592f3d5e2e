// Package logging provides tunetrace's shared structured logger. Errors
// logged through it are wrapped with github.com/mdobak/go-xerrors so a
// stack trace survives across package boundaries.
package logging

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/mdobak/go-xerrors"
)

var (
	once   sync.Once
	logger *slog.Logger
)

// Get returns the process-wide logger, creating it on first use.
func Get() *slog.Logger {
	once.Do(func() {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	})
	return logger
}

// Error logs err with a stack trace attached, under msg.
func Error(ctx context.Context, msg string, err error) {
	Get().ErrorContext(ctx, msg, slog.Any("error", xerrors.New(err)))
}

// Warn logs a non-fatal condition, such as a skipped file during
// ingestion.
func Warn(ctx context.Context, msg string, args ...any) {
	Get().WarnContext(ctx, msg, args...)
}
