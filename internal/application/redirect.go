package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sp3dr4/linkshortener/internal/domain"
	"github.com/sp3dr4/linkshortener/internal/pkg/metrics"
)

const cacheFillTimeout = 2 * time.Second

// Resolve returns the original URL for a short code. The click is handed to
// the recorder and never awaited, so the store write stays off the redirect
// path and its failures never reach the caller.
func (s *LinkService) Resolve(ctx context.Context, shortCode string) (string, error) {
	if originalURL := s.cachedURL(ctx, shortCode); originalURL != "" {
		s.recordClick(shortCode)
		return originalURL, nil
	}

	link, err := s.repo.FindByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			return "", domain.ErrLinkNotFound
		}
		return "", fmt.Errorf("resolve %q: %w", shortCode, err)
	}

	s.recordClick(shortCode)
	s.fillCache(shortCode, link.OriginalURL)

	return link.OriginalURL, nil
}

func (s *LinkService) recordClick(shortCode string) {
	s.metrics.IncRedirects()
	s.clicks.Record(shortCode)
}

// cachedURL treats cache failures as misses.
func (s *LinkService) cachedURL(ctx context.Context, shortCode string) string {
	if !s.cacheEnabled() {
		return ""
	}

	originalURL, err := s.cache.Get(ctx, shortCode)
	switch {
	case err != nil:
		s.metrics.RecordCacheLookup(metrics.CacheError)
		return ""
	case originalURL == "":
		s.metrics.RecordCacheLookup(metrics.CacheMiss)
		return ""
	default:
		s.metrics.RecordCacheLookup(metrics.CacheHit)
		return originalURL
	}
}

// fillCache populates the cache in the background after a miss.
func (s *LinkService) fillCache(shortCode, originalURL string) {
	if !s.cacheEnabled() {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cacheFillTimeout)
		defer cancel()
		if err := s.cache.Set(ctx, shortCode, originalURL, s.opts.CacheTTL); err != nil {
			s.logger.Warn("Failed to cache link", "short_code", shortCode, "error", err)
		}
	}()
}

func (s *LinkService) cacheEnabled() bool {
	return s.cache != nil && s.opts.CacheTTL > 0
}
