package messagebus

import (
	"context"

	"github.com/cenkalti/backoff/v5"
)

// RetryBus wraps a Bus with exponential-backoff retries. Transport
// flakiness is absorbed here so callers treat delivery as a single
// best-effort call.
type RetryBus struct {
	next     Bus
	maxTries uint
}

// NewRetryBus wraps the bus with up to maxTries delivery attempts.
func NewRetryBus(next Bus, maxTries uint) *RetryBus {
	if maxTries == 0 {
		maxTries = 3
	}
	return &RetryBus{next: next, maxTries: maxTries}
}

// CreatePost delivers a post, retrying on failure.
func (b *RetryBus) CreatePost(ctx context.Context, draft Draft) error {
	return b.retry(ctx, func() error {
		return b.next.CreatePost(ctx, draft)
	})
}

// CreateComment delivers a comment, retrying on failure.
func (b *RetryBus) CreateComment(ctx context.Context, draft Draft) error {
	return b.retry(ctx, func() error {
		return b.next.CreateComment(ctx, draft)
	})
}

func (b *RetryBus) retry(ctx context.Context, op func() error) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, op()
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(b.maxTries),
	)
	return err
}
