package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

// FixedWindowLimiter counts hits per key in fixed windows.
// Key format: ratelimit:<id>
type FixedWindowLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
}

// NewFixedWindowLimiter allows limit hits per key within each window.
func NewFixedWindowLimiter(client redis.Cmdable, limit int, window time.Duration) *FixedWindowLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &FixedWindowLimiter{client: client, limit: limit, window: window}
}

// Allow records one hit for id. The window starts at the first hit.
func (l *FixedWindowLimiter) Allow(ctx context.Context, id string) (ports.LimitResult, error) {
	k := key(nsRateLimit, id)

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		ttl = pipe.PTTL(ctx, k)
		return nil
	})
	if err != nil {
		return ports.LimitResult{Allowed: true, Limit: l.limit, Remaining: l.limit}, fmt.Errorf("rate limit incr: %w", err)
	}

	count := incr.Val()
	remaining := ttl.Val()
	// A key without expiry is a fresh window (or one whose EXPIRE was lost).
	if remaining < 0 {
		if err := l.client.PExpire(ctx, k, l.window).Err(); err != nil {
			return ports.LimitResult{Allowed: true, Limit: l.limit, Remaining: l.limit}, fmt.Errorf("rate limit expire: %w", err)
		}
		remaining = l.window
	}

	left := l.limit - int(count)
	if left < 0 {
		left = 0
	}
	return ports.LimitResult{
		Allowed:   count <= int64(l.limit),
		Limit:     l.limit,
		Remaining: left,
		Reset:     time.Now().Add(remaining),
	}, nil
}
