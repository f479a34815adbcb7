package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks failures reaching a remote backend. Wrap it with
// [Retryable] to have [RetryWithBackoff] try again.
var ErrNetwork = errors.New("network error")

// RetryableError marks err as transient.
type RetryableError struct{ Err error }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or an error it wraps, is a
// [RetryableError].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Retry parameters for [RetryWithBackoff]. The delay doubles after every
// failed attempt.
var (
	RetryAttempts = 3
	BackoffBase   = 200 * time.Millisecond
)

// RetryWithBackoff calls fn until it succeeds, fails with an error that is
// not retryable, or RetryAttempts calls have been made. It returns early
// with ctx.Err() when ctx ends while waiting.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := BackoffBase
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt >= RetryAttempts {
			return err
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
}
