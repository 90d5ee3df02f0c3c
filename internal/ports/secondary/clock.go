package secondary

import (
	"context"
	"time"
)

// Timer is an armed callback that can be stopped before it fires.
type Timer interface {
	// Stop prevents the callback from firing. Reports whether it was
	// stopped before firing.
	Stop() bool
}

// Clock abstracts wall time and timers so the orchestrator's debounce and
// retry waits are deterministic under test.
type Clock interface {
	Now() time.Time
	// AfterFunc arms f to run on its own goroutine after d.
	AfterFunc(d time.Duration, f func()) Timer
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the
	// latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock is the time-package backed Clock used outside tests.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
