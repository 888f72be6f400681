package vestaboard

import (
	"context"
	"sync"
	"time"
)

// RecommendedInterval is the platform's message pace: updates sent faster than
// one per 15 seconds may be dropped by the board.
const RecommendedInterval = 15 * time.Second

// RateLimiter holds back message posts. Implementations must return
// ctx.Err() once the context ends.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// RateLimiterFunc adapts a function into a RateLimiter.
type RateLimiterFunc func(ctx context.Context) error

// Wait calls f. A nil RateLimiterFunc never blocks.
func (f RateLimiterFunc) Wait(ctx context.Context) error {
	if f == nil {
		return nil
	}
	return f(ctx)
}

// NewFixedIntervalLimiter returns a RateLimiter that lets one message through
// per interval, in call order. It is safe for concurrent use. Non-positive
// intervals use RecommendedInterval.
func NewFixedIntervalLimiter(interval time.Duration) RateLimiter {
	if interval <= 0 {
		interval = RecommendedInterval
	}
	return &messagePacer{gap: interval, now: time.Now}
}

// messagePacer hands each message a board slot at least gap after the
// previous one. A caller that gives up still owns its slot.
type messagePacer struct {
	gap time.Duration
	now func() time.Time

	mu   sync.Mutex
	last time.Time // slot of the most recent message, zero before the first
}

// reserve books the next free slot and reports how long to wait for it.
func (p *messagePacer) reserve() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	slot := now
	if !p.last.IsZero() {
		if due := p.last.Add(p.gap); due.After(now) {
			slot = due
		}
	}
	p.last = slot
	return slot.Sub(now)
}

func (p *messagePacer) Wait(ctx context.Context) error {
	delay := p.reserve()
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pace blocks on the configured limiter before a message post.
func (c *Client) pace(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}
