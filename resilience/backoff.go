package resilience

import (
	"math/rand/v2"
	"time"
)

// Backoff is an exponential backoff policy with randomization.
// The n-th wait is InitialInterval * Multiplier^(n-1), capped at MaxInterval,
// then spread uniformly by ±RandomizationFactor.
type Backoff struct {
	InitialInterval     time.Duration
	Multiplier          float64
	RandomizationFactor float64
	MaxInterval         time.Duration
	// MaxElapsedTime stops retrying once this much time has passed since the
	// first attempt. Zero means retry until the context ends.
	MaxElapsedTime time.Duration
}

// DefaultBackoff returns the policy used for upstream APIs:
// 500ms initial, x1.5, ±50%, capped at 60s, giving up after 15 minutes.
func DefaultBackoff() Backoff {
	return Backoff{
		InitialInterval:     500 * time.Millisecond,
		Multiplier:          1.5,
		RandomizationFactor: 0.5,
		MaxInterval:         60 * time.Second,
		MaxElapsedTime:      15 * time.Minute,
	}
}

func (b Backoff) withDefaults() Backoff {
	d := DefaultBackoff()
	if b.InitialInterval <= 0 {
		b.InitialInterval = d.InitialInterval
	}
	if b.Multiplier < 1 {
		b.Multiplier = d.Multiplier
	}
	if b.RandomizationFactor < 0 || b.RandomizationFactor > 1 {
		b.RandomizationFactor = d.RandomizationFactor
	}
	if b.MaxInterval <= 0 {
		b.MaxInterval = d.MaxInterval
	}
	return b
}

// Interval returns the un-randomized wait before retry number attempt (1-based).
func (b Backoff) Interval(attempt int) time.Duration {
	b = b.withDefaults()
	if attempt < 1 {
		attempt = 1
	}
	interval := float64(b.InitialInterval)
	for i := 1; i < attempt; i++ {
		interval *= b.Multiplier
		if interval >= float64(b.MaxInterval) {
			return b.MaxInterval
		}
	}
	return time.Duration(interval)
}

// Next returns the randomized wait before retry number attempt.
func (b Backoff) Next(attempt int) time.Duration {
	b = b.withDefaults()
	base := float64(b.Interval(attempt))
	if b.RandomizationFactor == 0 {
		return time.Duration(base)
	}
	delta := b.RandomizationFactor * base
	low := base - delta
	return time.Duration(low + rand.Float64()*(2*delta))
}
