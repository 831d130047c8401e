package sms

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// RetryingSender wraps a Sender with bounded retry. Storage operations never
// retry; notifications are explicitly best-effort so a few attempts are cheap.
type RetryingSender struct {
	inner    Sender
	attempts int
	backoff  time.Duration
	logger   *zap.Logger
}

// NewRetryingSender builds the wrapper. attempts < 1 is clamped to 1.
func NewRetryingSender(inner Sender, attempts int, backoff time.Duration, logger *zap.Logger) *RetryingSender {
	if attempts < 1 {
		attempts = 1
	}
	return &RetryingSender{inner: inner, attempts: attempts, backoff: backoff, logger: logger}
}

// Send attempts delivery up to the configured number of times. A disabled
// provider short-circuits without retrying.
func (r *RetryingSender) Send(ctx context.Context, to, message string) error {
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		lastErr = r.inner.Send(ctx, to, message)
		if lastErr == nil || errors.Is(lastErr, ErrDisabled) {
			return lastErr
		}

		r.logger.Warn("sms attempt failed",
			zap.String("to", to),
			zap.Int("attempt", attempt),
			zap.Error(lastErr))

		if attempt == r.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoff):
		}
	}
	return lastErr
}
