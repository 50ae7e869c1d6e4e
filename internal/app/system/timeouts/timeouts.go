// Package timeouts provides centralized timeout values for handler operations.
//
// These timeouts are used with context.WithTimeout for database operations
// and other I/O in HTTP handlers. Using centralized values ensures consistency
// and makes it easy to adjust timeouts across the application.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Medium: resolving one grouping (record load, sub-group fetch,
//     composition) or a single-document preference write
//   - Long: resolving many groupings in one request, as the membership
//     and ownership listings do
package timeouts

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	ping   = 2 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
)

// Ping returns the timeout for health checks and connectivity verification.
// Used by health endpoints to verify database connectivity.
func Ping() time.Duration { return ping }

// Medium returns the timeout for single-grouping operations.
// Examples: resolve and project one grouping, update a preference flag.
func Medium() time.Duration { return medium }

// Long returns the timeout for operations that resolve many groupings.
// Examples: a requester's membership or ownership listing.
func Long() time.Duration { return long }

// WithTimeout creates a context with timeout and returns a cancel function that
// logs a warning if the context was canceled due to deadline exceeded.
//
// Example:
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "owned groupings")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
