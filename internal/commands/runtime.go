package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-scriptloc/internal/logging"
	"github.com/goliatone/go-scriptloc/pkg/interfaces"
)

const (
	// DefaultCommandTimeout bounds a command execution unless overridden.
	DefaultCommandTimeout = 30 * time.Second
	// LongCommandTimeout suits bulk work such as seeding every locale pack.
	LongCommandTimeout = 5 * time.Minute
	// SlowCommandThreshold marks executions DefaultTelemetry reports as slow.
	SlowCommandThreshold = 2 * time.Second
)

// EnsureContext returns ctx, or context.Background when ctx is nil.
func EnsureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

// WithCommandTimeout derives a context bounded by timeout. A non-positive
// timeout leaves ctx unbounded.
func WithCommandTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

// EnsureLogger returns logger, or a no-op logger when nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	return logging.Ensure(logger)
}
