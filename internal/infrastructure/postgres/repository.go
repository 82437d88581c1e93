package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sp3dr4/linkshortener/internal/domain"
)

const uniqueViolation = "23505"

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

	query := `
		INSERT INTO links (short_code, original_url, click_count, created_at)
		VALUES ($1, $2, 0, $3)
		RETURNING id, short_code, original_url, click_count, created_at
	`

	var result domain.Link
	err := r.db.QueryRowxContext(ctx, query, link.ShortCode, link.OriginalURL, createdAt).StructScan(&result)
	if err != nil {
		return nil, r.handlePostgreSQLError(err, "create link")
	}

	r.logger.Debug("Link created", "short_code", result.ShortCode, "id", result.ID)
	return &result, nil
}

func (r *LinkRepository) FindByShortCode(ctx context.Context, shortCode string) (*domain.Link, error) {
	var link domain.Link
	query := `SELECT id, short_code, original_url, click_count, created_at FROM links WHERE short_code = $1`

	if err := r.db.GetContext(ctx, &link, query, shortCode); err != nil {
		return nil, r.handlePostgreSQLError(err, "find link by short code")
	}

	return &link, nil
}

func (r *LinkRepository) ListAll(ctx context.Context) ([]*domain.Link, error) {
	links := []*domain.Link{}
	query := `
		SELECT id, short_code, original_url, click_count, created_at
		FROM links
		ORDER BY created_at DESC, id DESC
	`

	if err := r.db.SelectContext(ctx, &links, query); err != nil {
		return nil, r.handlePostgreSQLError(err, "list links")
	}

	return links, nil
}

func (r *LinkRepository) IncrementClicks(ctx context.Context, shortCode string) error {
	query := `UPDATE links SET click_count = click_count + 1 WHERE short_code = $1`

	if _, err := r.db.ExecContext(ctx, query, shortCode); err != nil {
		return r.handlePostgreSQLError(err, "increment clicks")
	}

	return nil
}

func (r *LinkRepository) Delete(ctx context.Context, shortCode string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM links WHERE short_code = $1`, shortCode)
	if err != nil {
		return 0, r.handlePostgreSQLError(err, "delete link")
	}

	return result.RowsAffected()
}

func (r *LinkRepository) Exists(ctx context.Context, shortCode string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM links WHERE short_code = $1)`

	if err := r.db.GetContext(ctx, &exists, query, shortCode); err != nil {
		return false, r.handlePostgreSQLError(err, "check link existence")
	}

	return exists, nil
}

func (r *LinkRepository) Stats(ctx context.Context) (*domain.LinkStats, error) {
	var stats domain.LinkStats
	query := `SELECT COUNT(*) AS total_links, COALESCE(SUM(click_count), 0)::BIGINT AS total_clicks FROM links`

	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, r.handlePostgreSQLError(err, "compute stats")
	}

	return &stats, nil
}

// handlePostgreSQLError converts PostgreSQL-specific errors to domain errors
func (r *LinkRepository) handlePostgreSQLError(err error, operation string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrLinkNotFound
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return fmt.Errorf("%s: %w", operation, err)
	}

	if pqErr.Code == uniqueViolation && pqErr.Constraint == "links_short_code_key" {
		return domain.ErrDuplicateCode
	}

	r.logger.Error("PostgreSQL error",
		"operation", operation,
		"code", string(pqErr.Code),
		"message", pqErr.Message,
		"detail", pqErr.Detail,
	)

	switch pqErr.Code {
	case uniqueViolation:
		return fmt.Errorf("unique constraint violation: %s", pqErr.Detail)
	case "23502": // not_null_violation
		return fmt.Errorf("required field missing: %s", pqErr.Column)
	case "23514": // check_violation
		return fmt.Errorf("check constraint violation: %s", pqErr.Detail)
	case "08000", "08003", "08006": // connection errors
		return fmt.Errorf("database connection error: %s", pqErr.Message)
	default:
		return fmt.Errorf("database error [%s]: %s", pqErr.Code, pqErr.Message)
	}
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
