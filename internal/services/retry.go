// Package services contains the domain adapters: each operation builds a
// fixed payload, issues one executor call, and maps the outcome to typed
// results. Transport and server errors surface as retryable errors; a
// decoded business failure never retries.
package services

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	maxAttempts        = 3
	defaultRetryBase   = time.Second
	defaultSearchLimit = 20
)

// linearBackoff waits attempt × base between tries: base, 2×base, 3×base...
func linearBackoff(base time.Duration) retry.Backoff {
	attempt := 0
	return retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		return time.Duration(attempt) * base, false
	})
}

// withRetry runs fn up to maxAttempts times with linear backoff. Only
// errors wrapped with retry.RetryableError are retried; the first
// non-retryable result ends the loop immediately.
func withRetry(ctx context.Context, base time.Duration, fn func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(maxAttempts-1, linearBackoff(base))
	return retry.Do(ctx, b, fn)
}
