package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNetwork marks backend transport failures (timeouts, connection
	// resets). Wrap it with Retryable to get automatic retries.
	ErrNetwork = errors.New("network error")

	// ErrCacheMiss is returned when a pipeline stage result is absent.
	ErrCacheMiss = errors.New("cache miss")
)

// RetryableError marks an error as transient so RetryWithBackoff will
// re-attempt the operation.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err carries a RetryableError anywhere in
// its chain.
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// RetryWithBackoff runs fn up to three times, doubling the wait from one
// second between attempts. Only retryable errors re-run; the Redis
// backend routes its network failures through here.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3

	wait := time.Second
	var lastErr error
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		lastErr = err

		if attempt == attempts {
			return lastErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
			wait *= 2
		}
	}
}
