package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network timeouts, 5xx responses, rate limits)
// with this type so that [Retry] knows to attempt the operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps an error as a RetryableError. Returns nil for nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err is wrapped with RetryableError.
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Policy configures retry behavior for transient failures.
// The zero value disables retries (a single attempt, no backoff).
type Policy struct {
	// Attempts is the total number of attempts, including the first.
	// Values below 1 are treated as 1.
	Attempts int

	// Delay is the initial backoff delay. It doubles after each failed
	// attempt.
	Delay time.Duration
}

// DefaultPolicy returns the standard retry policy: 3 attempts with a
// 1 second initial delay, doubling each retry.
func DefaultPolicy() Policy {
	return Policy{Attempts: 3, Delay: time.Second}
}

// Retry executes fn up to attempts times with exponential backoff.
// It only retries errors wrapped with [RetryableError]; other errors are
// returned immediately. The delay doubles after each failed attempt.
// Returns the last error if all attempts fail, or ctx.Err() if cancelled
// while waiting to retry.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithPolicy executes fn according to p. See [Retry].
func RetryWithPolicy(ctx context.Context, p Policy, fn func() error) error {
	return Retry(ctx, p.Attempts, p.Delay, fn)
}

// RetryWithBackoff is a convenience wrapper around [Retry] with the
// defaults from [DefaultPolicy].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return RetryWithPolicy(ctx, DefaultPolicy(), fn)
}
