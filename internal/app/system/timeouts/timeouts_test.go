package timeouts_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ruizaj/uh-groupings-api/internal/app/system/timeouts"
)

func TestTierOrdering(t *testing.T) {
	if !(timeouts.Ping() < timeouts.Medium() && timeouts.Medium() < timeouts.Long()) {
		t.Errorf("tiers out of order: ping=%v medium=%v long=%v",
			timeouts.Ping(), timeouts.Medium(), timeouts.Long())
	}
}

func TestWithTimeoutSetsDeadline(t *testing.T) {
	ctx, cancel := timeouts.WithTimeout(context.Background(), timeouts.Medium(), zap.NewNop(), "resolve grouping")
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("context has no deadline")
	}
	remaining := time.Until(deadline)
	if remaining <= 0 || remaining > timeouts.Medium() {
		t.Errorf("deadline %v from now, want within %v", remaining, timeouts.Medium())
	}
}

func TestWithTimeoutCancelIsSafeAfterDeadline(t *testing.T) {
	ctx, cancel := timeouts.WithTimeout(context.Background(), time.Millisecond, zap.NewNop(), "short op")
	<-ctx.Done()
	// Cancel after expiry takes the deadline-exceeded logging path and
	// must not panic.
	cancel()
	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("ctx.Err() = %v, want DeadlineExceeded", ctx.Err())
	}
}
