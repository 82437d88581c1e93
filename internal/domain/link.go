package domain

import (
	"time"
)

type Link struct {
	ID          int64     `db:"id" json:"id"`
	ShortCode   string    `db:"short_code" json:"short_code"`
	OriginalURL string    `db:"original_url" json:"original_url"`
	ClickCount  int64     `db:"click_count" json:"click_count"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// LinkStats is computed on demand and never stored.
type LinkStats struct {
	TotalLinks  int64 `db:"total_links" json:"total_links"`
	TotalClicks int64 `db:"total_clicks" json:"total_clicks"`
}

func NewLink(shortCode, originalURL string, now time.Time) (*Link, error) {
	if shortCode == "" {
		return nil, ErrCodeLength
	}
	if originalURL == "" {
		return nil, ErrInvalidURL
	}

	return &Link{
		ShortCode:   shortCode,
		OriginalURL: originalURL,
		ClickCount:  0,
		CreatedAt:   now,
	}, nil
}
