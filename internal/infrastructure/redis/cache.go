package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "link:"

// RedisCache maps short codes to original URLs. Click counts are never cached.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisCache(client *redis.Client, logger *slog.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisCache) Get(ctx context.Context, shortCode string) (string, error) {
	key := c.buildKey(shortCode)

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		c.logger.Error("Failed to get from cache", "key", key, "error", err)
		return "", fmt.Errorf("cache get failed: %w", err)
	}

	return val, nil
}

func (c *RedisCache) Set(ctx context.Context, shortCode, originalURL string, ttl time.Duration) error {
	key := c.buildKey(shortCode)

	if err := c.client.Set(ctx, key, originalURL, ttl).Err(); err != nil {
		c.logger.Error("Failed to set cache", "key", key, "error", err)
		return fmt.Errorf("cache set failed: %w", err)
	}

	return nil
}

func (c *RedisCache) Delete(ctx context.Context, shortCode string) error {
	key := c.buildKey(shortCode)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("Failed to delete from cache", "key", key, "error", err)
		return fmt.Errorf("cache delete failed: %w", err)
	}

	return nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *RedisCache) buildKey(shortCode string) string {
	return keyPrefix + shortCode
}
