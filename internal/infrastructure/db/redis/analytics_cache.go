package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
)

var analyticsKey = key(nsAnalytics, "summary")

// AnalyticsCache keeps the admin analytics summary as JSON under a single key.
type AnalyticsCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewAnalyticsCache(client redis.Cmdable, ttl time.Duration) *AnalyticsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AnalyticsCache{client: client, ttl: ttl}
}

// Get returns the cached summary, or (nil, nil) when nothing is cached.
func (c *AnalyticsCache) Get(ctx context.Context) (*domain.Analytics, error) {
	raw, err := c.client.Get(ctx, analyticsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("analytics cache get: %w", err)
	}
	var a domain.Analytics
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("analytics cache decode: %w", err)
	}
	return &a, nil
}

func (c *AnalyticsCache) Set(ctx context.Context, a *domain.Analytics) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("analytics cache encode: %w", err)
	}
	if err := c.client.Set(ctx, analyticsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("analytics cache set: %w", err)
	}
	return nil
}
