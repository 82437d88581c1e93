package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sp3dr4/linkshortener/internal/domain"
)

type LinkRepository struct {
	links  map[string]*domain.Link
	nextID int64
	mu     sync.RWMutex
}

func NewLinkRepository() *LinkRepository {
	return &LinkRepository{
		links: make(map[string]*domain.Link),
	}
}

func (r *LinkRepository) Create(_ context.Context, link *domain.Link) (*domain.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.links[link.ShortCode]; exists {
		return nil, domain.ErrDuplicateCode
	}

	r.nextID++
	created := &domain.Link{
		ID:          r.nextID,
		ShortCode:   link.ShortCode,
		OriginalURL: link.OriginalURL,
		ClickCount:  0,
		CreatedAt:   link.CreatedAt,
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.links[link.ShortCode] = created
	return copyLink(created), nil
}

func (r *LinkRepository) FindByShortCode(_ context.Context, shortCode string) (*domain.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	link, exists := r.links[shortCode]
	if !exists {
		return nil, domain.ErrLinkNotFound
	}

	return copyLink(link), nil
}

func (r *LinkRepository) ListAll(_ context.Context) ([]*domain.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	links := make([]*domain.Link, 0, len(r.links))
	for _, link := range r.links {
		links = append(links, copyLink(link))
	}

	sort.Slice(links, func(i, j int) bool {
		if !links[i].CreatedAt.Equal(links[j].CreatedAt) {
			return links[i].CreatedAt.After(links[j].CreatedAt)
		}
		return links[i].ID > links[j].ID
	})

	return links, nil
}

func (r *LinkRepository) IncrementClicks(_ context.Context, shortCode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if link, exists := r.links[shortCode]; exists {
		link.ClickCount++
	}
	return nil
}

func (r *LinkRepository) Delete(_ context.Context, shortCode string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.links[shortCode]; !exists {
		return 0, nil
	}
	delete(r.links, shortCode)
	return 1, nil
}

func (r *LinkRepository) Exists(_ context.Context, shortCode string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.links[shortCode]
	return exists, nil
}

func (r *LinkRepository) Stats(_ context.Context) (*domain.LinkStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &domain.LinkStats{TotalLinks: int64(len(r.links))}
	for _, link := range r.links {
		stats.TotalClicks += link.ClickCount
	}
	return stats, nil
}

func (r *LinkRepository) Close() error {
	return nil
}

func (r *LinkRepository) HealthCheck(_ context.Context) error {
	return nil
}

// copyLink keeps callers from mutating stored rows.
func copyLink(link *domain.Link) *domain.Link {
	c := *link
	return &c
}
