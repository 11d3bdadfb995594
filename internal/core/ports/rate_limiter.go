package ports

import (
	"context"
	"time"
)

// LimitResult describes the state of a key's window after one hit.
type LimitResult struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// RateLimiter counts one hit for key and reports whether it is within budget.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (LimitResult, error)
}
