package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as transient, so that [Retry] attempts the
// operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a [RetryableError]. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err is wrapped in a [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Policy is the number of attempts and the delay before the first retry.
// The delay doubles after each failed attempt.
type Policy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultPolicy makes 3 attempts starting with a one second delay.
var DefaultPolicy = Policy{Attempts: 3, Delay: time.Second}

// Retry calls fn until it succeeds, fails with a non-retryable error, or
// the attempts run out. It returns the last error, or ctx.Err() if the
// context ends while waiting.
func Retry(ctx context.Context, p Policy, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay
	var lastErr error

	for i := 0; i < attempts; i++ {
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
