package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/brandonbohn/adebackend/internal/domain"
)

// PostgresContentRepository content_sections table (JSONB per section)
type PostgresContentRepository struct {
	db *sql.DB
}

func NewPostgresContentRepository(db *sql.DB) *PostgresContentRepository {
	return &PostgresContentRepository{db: db}
}

var _ ContentRepository = (*PostgresContentRepository)(nil)

func (r *PostgresContentRepository) GetSection(ctx context.Context, key string) (*domain.ContentSection, error) {
	var s domain.ContentSection
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT key, data, updated_at FROM content_sections WHERE key = $1`, key,
	).Scan(&s.Key, &data, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("content section %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get content section: %w", err)
	}
	s.Data = data
	return &s, nil
}

func (r *PostgresContentRepository) ListSections(ctx context.Context) ([]*domain.ContentSection, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, data, updated_at FROM content_sections ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list content sections: %w", err)
	}
	defer rows.Close()

	var out []*domain.ContentSection
	for rows.Next() {
		var s domain.ContentSection
		var data []byte
		if err := rows.Scan(&s.Key, &data, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan content section: %w", err)
		}
		s.Data = data
		out = append(out, &s)
	}
	return out, rows.Err()
}

// UpsertSection replaces the stored record for s.Key.
func (r *PostgresContentRepository) UpsertSection(ctx context.Context, s *domain.ContentSection) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO content_sections (key, data)
		VALUES ($1, $2::jsonb)
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
		RETURNING updated_at`,
		s.Key, string(s.Data),
	).Scan(&s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert content section: %w", err)
	}
	return nil
}
