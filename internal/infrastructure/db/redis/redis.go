// Package redis holds the Redis-backed adapters: the access-token denylist,
// the auth rate limiter and the analytics cache.
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// Key namespaces. Every adapter writes under its own prefix so the instance
// can be shared with other services.
const (
	nsDenylist  = "denylist"
	nsRateLimit = "ratelimit"
	nsAnalytics = "analytics"
)

// Config captures the settings for establishing a Redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds the initial ping and every socket read and write.
	Timeout time.Duration
}

// Connect opens a client for cfg and pings the server before returning it.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// key joins a namespace and its parts with ':'.
func key(ns string, parts ...string) string {
	return strings.Join(append([]string{ns}, parts...), ":")
}
