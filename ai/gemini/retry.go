package gemini

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy retries a call on retryable provider failures, doubling the
// delay between attempts.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  int
	// OnRetry fires before each repeated attempt.
	OnRetry func()
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		Multiplier:  2,
	}
}

// Sleeper lets tests observe delays without waiting them out.
type Sleeper func(ctx context.Context, d time.Duration) error

func sleepFor(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do runs fn up to MaxAttempts times. Non-retryable errors and context
// cancellation stop immediately; the last error wins.
func (p RetryPolicy) Do(ctx context.Context, sleep Sleeper, fn func() error) error {
	if sleep == nil {
		sleep = sleepFor
	}
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	delay := p.BaseDelay
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		var provErr *ProviderError
		if !errors.As(lastErr, &provErr) || !provErr.Retryable() {
			return lastErr
		}
		if attempt == attempts {
			break
		}

		if err := sleep(ctx, delay); err != nil {
			return err
		}
		if p.OnRetry != nil {
			p.OnRetry()
		}
		if p.Multiplier > 1 {
			delay *= time.Duration(p.Multiplier)
		}
	}
	return lastErr
}
