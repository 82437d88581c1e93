package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sp3dr4/linkshortener/internal/domain"
	"github.com/sp3dr4/linkshortener/internal/pkg/metrics"
	"github.com/sp3dr4/linkshortener/internal/shortcode"
)

// CodeAllocator picks the short code for a new link.
type CodeAllocator interface {
	Allocate(ctx context.Context) (string, error)
	ValidateCustom(ctx context.Context, code string) (string, error)
}

// ClickRecorder schedules a click without waiting for it to be stored.
type ClickRecorder interface {
	Record(shortCode string) bool
}

type Options struct {
	BaseURL string
	// CacheTTL enables the redirect lookup cache when positive.
	CacheTTL time.Duration
}

type LinkService struct {
	repo      domain.LinkRepository
	allocator CodeAllocator
	clicks    ClickRecorder
	cache     domain.Cache
	opts      Options
	metrics   metrics.Registry
	logger    *slog.Logger
	now       func() time.Time
}

func NewLinkService(
	repo domain.LinkRepository,
	allocator CodeAllocator,
	clicks ClickRecorder,
	cache domain.Cache,
	opts Options,
	registry metrics.Registry,
	logger *slog.Logger,
) *LinkService {
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &LinkService{
		repo:      repo,
		allocator: allocator,
		clicks:    clicks,
		cache:     cache,
		opts:      opts,
		metrics:   registry,
		logger:    logger,
		now:       time.Now,
	}
}

// Compile-time check that the shortcode allocator satisfies CodeAllocator.
var _ CodeAllocator = (*shortcode.Allocator)(nil)

type ShortenRequest struct {
	URL string `json:"url" example:"https://example.com/some/long/path"`
	// CustomCode is optional; null or absent means a code is generated.
	CustomCode *string `json:"custom_code,omitempty" example:"mylink"`
}

type ShortenResponse struct {
	ShortCode   string `json:"short_code" example:"aB3xY9"`
	ShortURL    string `json:"short_url" example:"http://localhost:8080/aB3xY9"`
	OriginalURL string `json:"original_url" example:"https://example.com/some/long/path"`
}

// Shorten validates the request, settles on a code and persists the link.
// Either a link is stored and returned, or nothing is stored.
func (s *LinkService) Shorten(ctx context.Context, req ShortenRequest) (*ShortenResponse, error) {
	originalURL, err := normalizeURL(req.URL)
	if err != nil {
		return nil, err
	}

	var code string
	if req.CustomCode != nil {
		code, err = s.allocator.ValidateCustom(ctx, *req.CustomCode)
	} else {
		code, err = s.allocator.Allocate(ctx)
	}
	if err != nil {
		return nil, err
	}

	link, err := domain.NewLink(code, originalURL, s.now().UTC())
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, link)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateCode) {
			s.logger.Warn("Short code lost insert race", "short_code", code)
			return nil, fmt.Errorf("%w: %s", domain.ErrCodeConflict, code)
		}
		return nil, fmt.Errorf("create link: %w", err)
	}

	s.metrics.IncLinksCreated()
	s.logger.Info("Created short link", "short_code", created.ShortCode, "id", created.ID)

	return &ShortenResponse{
		ShortCode:   created.ShortCode,
		ShortURL:    s.ShortURL(created.ShortCode),
		OriginalURL: created.OriginalURL,
	}, nil
}

// ShortURL composes the public address of a short code.
func (s *LinkService) ShortURL(code string) string {
	return s.opts.BaseURL + "/" + code
}

func (s *LinkService) GetLink(ctx context.Context, shortCode string) (*domain.Link, error) {
	link, err := s.repo.FindByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("get link: %w", err)
	}
	return link, nil
}

func (s *LinkService) ListLinks(ctx context.Context) ([]*domain.Link, error) {
	links, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

func (s *LinkService) Stats(ctx context.Context) (*domain.LinkStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute stats: %w", err)
	}
	return stats, nil
}

// DeleteLink removes the row outright. It returns ErrLinkNotFound when
// nothing was removed.
func (s *LinkService) DeleteLink(ctx context.Context, shortCode string) error {
	removed, err := s.repo.Delete(ctx, shortCode)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	if removed == 0 {
		return domain.ErrLinkNotFound
	}

	if s.cacheEnabled() {
		if err := s.cache.Delete(ctx, shortCode); err != nil {
			s.logger.Error("Failed to invalidate cached link", "short_code", shortCode, "error", err)
		}
	}

	s.metrics.IncLinksDeleted()
	s.logger.Info("Deleted short link", "short_code", shortCode)
	return nil
}

// Ready reports whether the store answers.
func (s *LinkService) Ready(ctx context.Context) error {
	return s.repo.HealthCheck(ctx)
}

// normalizeURL trims surrounding whitespace and enforces an http(s) scheme.
func normalizeURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return "", domain.ErrInvalidURL
	}
	return trimmed, nil
}
