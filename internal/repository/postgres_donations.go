package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/brandonbohn/adebackend/internal/domain"

	"github.com/google/uuid"
)

// PostgresDonationsRepository donations table
type PostgresDonationsRepository struct {
	db *sql.DB
}

func NewPostgresDonationsRepository(db *sql.DB) *PostgresDonationsRepository {
	return &PostgresDonationsRepository{db: db}
}

var _ DonationsRepository = (*PostgresDonationsRepository)(nil)

// CreateDonation appends a ledger row. donor_id is stored as given.
func (r *PostgresDonationsRepository) CreateDonation(ctx context.Context, d *domain.Donation) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	query := `
		INSERT INTO donations (id, donor_id, amount, currency, donation_type, message, date)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, NULLIF($6, ''), $7)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		d.ID, d.DonorID, d.Amount, d.Currency, d.DonationType, d.Message, d.Date,
	).Scan(&d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}
	return nil
}

// ListDonations newest first.
func (r *PostgresDonationsRepository) ListDonations(ctx context.Context, filter DonationsFilter) ([]*domain.Donation, error) {
	where := []string{"1=1"}
	args := []any{}
	argIdx := 1

	if filter.DonorID != "" {
		where = append(where, fmt.Sprintf("donor_id = $%d", argIdx))
		args = append(args, filter.DonorID)
		argIdx++
	}
	if filter.Currency != "" {
		where = append(where, fmt.Sprintf("currency = $%d", argIdx))
		args = append(args, filter.Currency)
		argIdx++
	}

	query := `
		SELECT id::text, COALESCE(donor_id, ''), amount, currency, donation_type, COALESCE(message, ''), date, created_at
		FROM donations
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY date DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	defer rows.Close()

	var out []*domain.Donation
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(&d.ID, &d.DonorID, &d.Amount, &d.Currency, &d.DonationType, &d.Message, &d.Date, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan donation: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *PostgresDonationsRepository) TotalsByCurrency(ctx context.Context) ([]domain.CurrencyTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT currency, COALESCE(SUM(amount), 0), COUNT(*)
		FROM donations
		GROUP BY currency
		ORDER BY currency`)
	if err != nil {
		return nil, fmt.Errorf("failed to total donations: %w", err)
	}
	defer rows.Close()

	var out []domain.CurrencyTotal
	for rows.Next() {
		var t domain.CurrencyTotal
		if err := rows.Scan(&t.Currency, &t.Total, &t.Count); err != nil {
			return nil, fmt.Errorf("failed to scan donation total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
