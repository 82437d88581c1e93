package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sp3dr4/linkshortener/internal/domain"
)

var _ domain.Cache = (*NoOpCache)(nil)

func TestNoOpCache(t *testing.T) {
	c := NewNoOpCache()
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "abc123", "https://example.com", time.Minute))

	url, err := c.Get(ctx, "abc123")
	assert.NoError(t, err)
	assert.Empty(t, url, "always a miss")

	assert.NoError(t, c.Delete(ctx, "abc123"))
	assert.NoError(t, c.Ping(ctx))
}
