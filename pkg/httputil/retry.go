package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as transient. [Retry] re-attempts the
// operation for errors wrapped in this type (network timeouts, 5xx
// responses) and gives up immediately on anything else.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn until it succeeds, a non-retryable error occurs, ctx is
// cancelled, or attempts are exhausted. The wait between attempts starts
// at initial and doubles each time. The last observed error is returned
// when every attempt fails.
func Retry(ctx context.Context, attempts int, initial time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	wait := initial
	var lastErr error
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !errors.As(err, new(*RetryableError)) {
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

// RetryWithBackoff runs fn with the default dataset-fetch policy:
// three attempts starting from a one second wait.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}
