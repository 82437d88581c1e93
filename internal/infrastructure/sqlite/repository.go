package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/sp3dr4/linkshortener/internal/domain"
)

const linkColumns = `id, short_code, original_url, click_count, created_at`

type LinkRepository struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewLinkRepository(db *sqlx.DB, logger *slog.Logger) *LinkRepository {
	return &LinkRepository{db: db, logger: logger}
}

func (r *LinkRepository) Create(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	createdAt := link.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	createdAt = createdAt.UTC()

	query := `INSERT INTO links (short_code, original_url, click_count, created_at) VALUES (?, ?, 0, ?)`

	result, err := r.db.ExecContext(ctx, query, link.ShortCode, link.OriginalURL, createdAt)
	if err != nil {
		return nil, r.handleSQLiteError(err, "create link")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read inserted id: %w", err)
	}

	r.logger.Debug("Link created", "short_code", link.ShortCode, "id", id)
	return &domain.Link{
		ID:          id,
		ShortCode:   link.ShortCode,
		OriginalURL: link.OriginalURL,
		ClickCount:  0,
		CreatedAt:   createdAt,
	}, nil
}

func (r *LinkRepository) FindByShortCode(ctx context.Context, shortCode string) (*domain.Link, error) {
	var link domain.Link
	query := `SELECT ` + linkColumns + ` FROM links WHERE short_code = ?`

	if err := r.db.GetContext(ctx, &link, query, shortCode); err != nil {
		return nil, r.handleSQLiteError(err, "find link by short code")
	}

	return &link, nil
}

func (r *LinkRepository) ListAll(ctx context.Context) ([]*domain.Link, error) {
	links := []*domain.Link{}
	query := `SELECT ` + linkColumns + ` FROM links ORDER BY created_at DESC, id DESC`

	if err := r.db.SelectContext(ctx, &links, query); err != nil {
		return nil, r.handleSQLiteError(err, "list links")
	}

	return links, nil
}

func (r *LinkRepository) IncrementClicks(ctx context.Context, shortCode string) error {
	query := `UPDATE links SET click_count = click_count + 1 WHERE short_code = ?`

	if _, err := r.db.ExecContext(ctx, query, shortCode); err != nil {
		return r.handleSQLiteError(err, "increment clicks")
	}

	return nil
}

func (r *LinkRepository) Delete(ctx context.Context, shortCode string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM links WHERE short_code = ?`, shortCode)
	if err != nil {
		return 0, r.handleSQLiteError(err, "delete link")
	}

	return result.RowsAffected()
}

func (r *LinkRepository) Exists(ctx context.Context, shortCode string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM links WHERE short_code = ?)`

	if err := r.db.GetContext(ctx, &exists, query, shortCode); err != nil {
		return false, r.handleSQLiteError(err, "check link existence")
	}

	return exists, nil
}

func (r *LinkRepository) Stats(ctx context.Context) (*domain.LinkStats, error) {
	var stats domain.LinkStats
	query := `SELECT COUNT(*) AS total_links, COALESCE(SUM(click_count), 0) AS total_clicks FROM links`

	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, r.handleSQLiteError(err, "compute stats")
	}

	return &stats, nil
}

// handleSQLiteError converts SQLite-specific errors to domain errors
func (r *LinkRepository) handleSQLiteError(err error, operation string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrLinkNotFound
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return domain.ErrDuplicateCode
		}
		r.logger.Error("SQLite error",
			"operation", operation,
			"code", int(sqliteErr.Code),
			"extended_code", int(sqliteErr.ExtendedCode),
			"error", sqliteErr.Error(),
		)
	}

	return fmt.Errorf("%s: %w", operation, err)
}

func (r *LinkRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *LinkRepository) HealthCheck(ctx context.Context) error {
	if r.db == nil {
		return errors.New("database connection is nil")
	}
	return r.db.PingContext(ctx)
}
