package timeutil

import (
	"context"
	"time"
)

// Sleeper abstracts a context-aware time.Sleep so that a fake clock can be
// substituted in tests.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type realSleeper struct{}

// NewRealSleeper returns a Sleeper backed by the real wall clock.
func NewRealSleeper() Sleeper {
	return realSleeper{}
}

// Sleep blocks for d or until ctx is cancelled, whichever comes first.
func (realSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
