package cache

import (
	"context"
	"time"
)

// NoOpCache always misses. It is the default so the store stays the only
// source of truth unless a real cache is configured.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(_ context.Context, _ string) (string, error) {
	return "", nil
}

func (c *NoOpCache) Set(_ context.Context, _, _ string, _ time.Duration) error {
	return nil
}

func (c *NoOpCache) Delete(_ context.Context, _ string) error {
	return nil
}

func (c *NoOpCache) Ping(_ context.Context) error {
	return nil
}
