// Package redis provides the short-TTL cache that fronts the reverse
// hostname lookup on the request hot path.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type DomainCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*DomainCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &DomainCache{client: client, ttl: ttl}, nil
}

func (c *DomainCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("redis.DomainCache.Close: %w", err)
	}
	return nil
}

// Get returns the cached username for hostname. The second return is false
// on miss; cache transport errors are returned so callers can degrade to a
// direct directory lookup.
func (c *DomainCache) Get(ctx context.Context, hostname string) (string, bool, error) {
	username, err := c.client.Get(ctx, key(hostname)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis.DomainCache.Get: %w", err)
	}

	return username, true, nil
}

// Set caches a resolved hostname for the configured TTL.
func (c *DomainCache) Set(ctx context.Context, hostname, username string) error {
	if err := c.client.Set(ctx, key(hostname), username, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis.DomainCache.Set: %w", err)
	}
	return nil
}

// Invalidate drops a hostname from the cache. Called by the lifecycle
// manager whenever a binding changes so routing converges immediately
// instead of waiting out the TTL.
func (c *DomainCache) Invalidate(ctx context.Context, hostname string) error {
	if err := c.client.Del(ctx, key(hostname)).Err(); err != nil {
		return fmt.Errorf("redis.DomainCache.Invalidate: %w", err)
	}
	return nil
}

func key(hostname string) string {
	return "hostmap:" + hostname
}
