package utils

import (
	"context"
	"time"
)

// Latency stands in for a storage round trip. A zero value does not wait.
type Latency time.Duration

// Wait blocks for the configured duration or until ctx is done.
func (l Latency) Wait(ctx context.Context) error {
	if l <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(time.Duration(l))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
