package domain

import "context"

// LinkRepository is the link registry over the persistent store. Every
// method is atomic at the store level.
type LinkRepository interface {
	// Create inserts a link and returns it with its store-assigned ID and
	// creation time. It returns ErrDuplicateCode when the short code is taken.
	Create(ctx context.Context, link *Link) (*Link, error)
	FindByShortCode(ctx context.Context, shortCode string) (*Link, error)
	// ListAll returns every link, newest first.
	ListAll(ctx context.Context) ([]*Link, error)
	// IncrementClicks adds one to the counter. An unknown code is a no-op.
	IncrementClicks(ctx context.Context, shortCode string) error
	// Delete removes the link and reports how many rows were removed (0 or 1).
	Delete(ctx context.Context, shortCode string) (int64, error)
	Exists(ctx context.Context, shortCode string) (bool, error)
	Stats(ctx context.Context) (*LinkStats, error)
	Close() error
	HealthCheck(ctx context.Context) error
}
