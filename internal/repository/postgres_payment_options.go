package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/brandonbohn/adebackend/internal/domain"

	"github.com/google/uuid"
)

// PostgresPaymentOptionsRepository payment_options table
type PostgresPaymentOptionsRepository struct {
	db *sql.DB
}

func NewPostgresPaymentOptionsRepository(db *sql.DB) *PostgresPaymentOptionsRepository {
	return &PostgresPaymentOptionsRepository{db: db}
}

var _ PaymentOptionsRepository = (*PostgresPaymentOptionsRepository)(nil)

const paymentOptionColumns = `id::text, type, label, COALESCE(description, ''), created_at, updated_at`

func scanPaymentOption(row rowScanner) (*domain.PaymentOption, error) {
	var p domain.PaymentOption
	if err := row.Scan(&p.ID, &p.Type, &p.Label, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPaymentOptionsRepository) CreatePaymentOption(ctx context.Context, p *domain.PaymentOption) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO payment_options (id, type, label, description)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING created_at, updated_at`,
		p.ID, p.Type, p.Label, p.Description,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment option: %w", err)
	}
	return nil
}

func (r *PostgresPaymentOptionsRepository) GetPaymentOption(ctx context.Context, id string) (*domain.PaymentOption, error) {
	p, err := scanPaymentOption(r.db.QueryRowContext(ctx,
		`SELECT `+paymentOptionColumns+` FROM payment_options WHERE id::text = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("payment option %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment option: %w", err)
	}
	return p, nil
}

func (r *PostgresPaymentOptionsRepository) ListPaymentOptions(ctx context.Context) ([]*domain.PaymentOption, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+paymentOptionColumns+` FROM payment_options ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment options: %w", err)
	}
	defer rows.Close()

	var out []*domain.PaymentOption
	for rows.Next() {
		p, err := scanPaymentOption(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment option: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresPaymentOptionsRepository) UpdatePaymentOption(ctx context.Context, p *domain.PaymentOption) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE payment_options SET type = $2, label = $3, description = NULLIF($4, ''), updated_at = NOW()
		WHERE id::text = $1
		RETURNING created_at, updated_at`,
		p.ID, p.Type, p.Label, p.Description,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("payment option %s: %w", p.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to update payment option: %w", err)
	}
	return nil
}

func (r *PostgresPaymentOptionsRepository) DeletePaymentOption(ctx context.Context, id string) error {
	return execDelete(ctx, r.db, `DELETE FROM payment_options WHERE id::text = $1`, "payment option", id)
}
