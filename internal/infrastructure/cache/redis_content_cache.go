package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisContentCache implements ContentCache using Redis
// This is suitable for distributed deployments where multiple instances
// should serve the same generated content for a given day
type RedisContentCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisContentCache creates a cache backed by an existing Redis client
func NewRedisContentCache(client *redis.Client, keyPrefix string) *RedisContentCache {
	if keyPrefix == "" {
		keyPrefix = "content:daily:"
	}
	return &RedisContentCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached payload for a key, reporting whether it exists
func (c *RedisContentCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read content cache: %w", err)
	}
	return value, true, nil
}

// Set stores a payload with a TTL
func (c *RedisContentCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write content cache: %w", err)
	}
	return nil
}

var _ ContentCache = (*RedisContentCache)(nil)
