package resilience

import (
	"context"
	"errors"
	"time"
)

// ErrRetryTimeout is joined to the last error when the backoff's
// MaxElapsedTime runs out.
var ErrRetryTimeout = errors.New("retry: max elapsed time exceeded")

// permanentError marks an error that must not be retried.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so that Retry returns it immediately.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// RetryConfig configures retry behavior.
type RetryConfig struct {
	Backoff Backoff
	// MaxAttempts caps the number of attempts. Zero means no cap.
	MaxAttempts int
	// RetryIf decides whether a non-permanent error is retried. Nil retries all.
	RetryIf func(error) bool
	// OnRetry is called before each wait.
	OnRetry func(attempt int, err error, wait time.Duration)
}

// DefaultRetryConfig retries with DefaultBackoff until MaxElapsedTime.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{Backoff: DefaultBackoff(), RetryIf: DefaultRetryIf}
}

// DefaultRetryIf retries all errors except context cancellation.
func DefaultRetryIf(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Retry calls fn until it succeeds, returns a permanent error, RetryIf
// rejects the error, MaxAttempts is reached, the backoff's MaxElapsedTime
// passes, or ctx ends. Permanent errors are returned unwrapped.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func() (T, error)) (T, error) {
	var zero T
	start := time.Now()

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		var p *permanentError
		if errors.As(err, &p) {
			return zero, p.err
		}
		if cfg.RetryIf != nil && !cfg.RetryIf(err) {
			return zero, err
		}
		if cfg.MaxAttempts > 0 && attempt >= cfg.MaxAttempts {
			return zero, err
		}

		wait := cfg.Backoff.Next(attempt)
		if limit := cfg.Backoff.MaxElapsedTime; limit > 0 && time.Since(start)+wait > limit {
			return zero, errors.Join(err, ErrRetryTimeout)
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, wait)
		}

		if err := Sleep(ctx, wait); err != nil {
			return zero, err
		}
	}
}

// RetryFunc is Retry for functions that return only an error.
func RetryFunc(ctx context.Context, cfg RetryConfig, fn func() error) error {
	_, err := Retry(ctx, cfg, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// Sleep waits for d or until ctx ends, returning ctx.Err() in the latter case.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
