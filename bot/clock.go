package bot

import (
	"context"
	"time"

	"github.com/alextes/calabi/resilience"
)

// Clock supplies the current time and context-aware sleeps.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// UTCClock is the wall clock in UTC. Markets are dated in UTC.
type UTCClock struct{}

// Now returns the current UTC time.
func (UTCClock) Now() time.Time { return time.Now().UTC() }

// Sleep waits for d or until ctx ends.
func (UTCClock) Sleep(ctx context.Context, d time.Duration) error {
	return resilience.Sleep(ctx, d)
}
