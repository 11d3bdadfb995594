package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked access tokens by their jti.
// Key format: denylist:<jti>
type Denylist struct {
	client redis.Cmdable
}

// NewDenylist creates a Denylist wrapping the given Redis client.
func NewDenylist(client redis.Cmdable) *Denylist {
	return &Denylist{client: client}
}

// Revoke marks tokenID as revoked for ttl, which should be the token's
// remaining lifetime.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("denylist revoke: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID has been revoked.
func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *Denylist) key(tokenID string) string {
	return key(nsDenylist, tokenID)
}
