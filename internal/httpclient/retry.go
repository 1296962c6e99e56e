package httpclient

import (
	"context"
	"time"
)

// RetryPolicy is a bounded retry policy with linearly increasing backoff,
// parameterized by max attempts and base delay. It is decoupled from the
// transport so callers can test retry behavior with a fake sleep function.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration

	// Sleep is overridable for tests; nil means context-aware time.Sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewRetryPolicy creates a retry policy from attempt count and base delay.
func NewRetryPolicy(maxAttempts int, baseDelay time.Duration) RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
	}
}

// Delay returns the backoff before the given retry. The first retry waits one
// base delay, the second two, and so on.
func (rp RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return rp.BaseDelay * time.Duration(attempt)
}

// Wait blocks for the backoff belonging to the given attempt, honoring
// context cancellation.
func (rp RetryPolicy) Wait(ctx context.Context, attempt int) error {
	if rp.Sleep != nil {
		return rp.Sleep(ctx, rp.Delay(attempt))
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(rp.Delay(attempt)):
		return nil
	}
}

// Execute runs op up to MaxAttempts times, waiting between attempts. The op
// reports whether its failure is retryable; the final error is surfaced to
// the caller when attempts are exhausted.
func (rp RetryPolicy) Execute(ctx context.Context, op func(ctx context.Context) (retryable bool, err error)) error {
	var lastErr error
	for attempt := 1; attempt <= rp.MaxAttempts; attempt++ {
		retryable, err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable || attempt == rp.MaxAttempts {
			break
		}
		if waitErr := rp.Wait(ctx, attempt); waitErr != nil {
			return waitErr
		}
	}
	return lastErr
}
