// Package retryx wraps cenkalti/backoff with the retry policy used for
// external marketplace and database calls: bounded attempts, exponential
// backoff, context-aware. Exhausted operations return the last error so the
// caller can dead-letter them; nothing here retries forever.
package retryx

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxAttempts     = 5
	DefaultInitialInterval = 3 * time.Second
)

// Permanent marks an error as non-retryable (e.g. upstream 404).
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs op at most maxAttempts times with exponential backoff starting at
// initialInterval. The context cancels waiting between attempts.
func Do(ctx context.Context, maxAttempts uint64, initialInterval time.Duration, op func() error) error {
	if maxAttempts == 0 {
		maxAttempts = 1
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initialInterval

	return backoff.Retry( //nolint:wrapcheck
		op,
		backoff.WithContext(backoff.WithMaxRetries(b, maxAttempts-1), ctx),
	)
}
