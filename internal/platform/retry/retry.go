// Package retry implements bounded retries with exponential backoff for
// calls to external services.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Action tells Do how to treat a failed attempt.
type Action int

const (
	Stop  Action = iota // permanent error, abort immediately
	Retry               // transient error, retry with backoff
)

// Policy bounds the retry loop.
type Policy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	OnRetry        func(attempt int, err error, backoff time.Duration)
}

// Classify decides whether an error is worth retrying.
type Classify func(err error) Action

// Operation is the call under retry.
type Operation[T any] func() (T, error)

// Do runs op up to MaxAttempts times, doubling the backoff between attempts.
// A Stop classification aborts immediately with a PermanentError; context
// cancellation aborts the wait.
func Do[T any](ctx context.Context, p Policy, classify Classify, op Operation[T]) (T, error) {
	var zero T
	backoff := p.InitialBackoff

	for attempt := 1; ; attempt++ {
		val, err := op()
		if err == nil {
			return val, nil
		}

		if classify(err) == Stop {
			return zero, &PermanentError{Err: err}
		}
		if attempt >= p.MaxAttempts {
			return zero, fmt.Errorf("failed after %d attempts: %w", p.MaxAttempts, err)
		}

		if p.OnRetry != nil {
			p.OnRetry(attempt, err, backoff)
		}

		select {
		case <-time.After(backoff):
			backoff *= 2
		case <-ctx.Done():
			return zero, fmt.Errorf("context cancelled during retry: %w", ctx.Err())
		}
	}
}

// PermanentError marks an error that retrying cannot fix.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }
