package apiclient

import (
	"context"
	"time"
)

// Policy controls retry behavior for idempotent GET requests.
// Mutations never consult it.
type Policy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// Backoff is the wait before the first retry; it doubles per
	// attempt, capped at MaxBackoff.
	Backoff    time.Duration
	MaxBackoff time.Duration

	// RetryableStatuses is the set of HTTP status codes worth retrying.
	RetryableStatuses map[int]bool
}

// DefaultPolicy returns the stock GET retry policy
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		Backoff:     250 * time.Millisecond,
		MaxBackoff:  5 * time.Second,
		RetryableStatuses: map[int]bool{
			429: true,
			500: true,
			502: true,
			503: true,
			504: true,
		},
	}
}

// Retryable reports whether a response status is worth retrying
func (p Policy) Retryable(status int) bool {
	return p.RetryableStatuses[status]
}

// Wait sleeps for the backoff of the given attempt (1-based), honoring
// context cancellation.
func (p Policy) Wait(ctx context.Context, attempt int) error {
	backoff := p.Backoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
		if backoff >= p.MaxBackoff {
			backoff = p.MaxBackoff
			break
		}
	}

	timer := time.NewTimer(backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
