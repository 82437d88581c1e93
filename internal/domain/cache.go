package domain

import (
	"context"
	"time"
)

// Cache defines the redirect lookup cache. Only the immutable mapping from
// short code to original URL is cached.
type Cache interface {
	// Get returns the original URL for a short code, or "" on a miss.
	Get(ctx context.Context, shortCode string) (string, error)

	// Set stores the mapping with the specified TTL
	Set(ctx context.Context, shortCode, originalURL string, ttl time.Duration) error

	// Delete removes a mapping from cache
	Delete(ctx context.Context, shortCode string) error

	// Ping checks if the cache is available
	Ping(ctx context.Context) error
}
