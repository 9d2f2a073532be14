package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/brandonbohn/adebackend/internal/domain"

	"github.com/google/uuid"
)

// PostgresDonorsRepository donors table
type PostgresDonorsRepository struct {
	db *sql.DB
}

func NewPostgresDonorsRepository(db *sql.DB) *PostgresDonorsRepository {
	return &PostgresDonorsRepository{db: db}
}

var _ DonorsRepository = (*PostgresDonorsRepository)(nil)

const donorColumns = `
	id::text,
	COALESCE(contact_info_id::text, ''),
	name,
	COALESCE(email, ''),
	COALESCE(phone, ''),
	COALESCE(country, ''),
	amount,
	status,
	source,
	COALESCE(contact_id::text, ''),
	anonymous,
	COALESCE(message, ''),
	COALESCE(notes, ''),
	created_at,
	updated_at`

func scanDonor(row rowScanner) (*domain.Donor, error) {
	var d domain.Donor
	err := row.Scan(
		&d.ID,
		&d.ContactInfoID,
		&d.Name,
		&d.Email,
		&d.Phone,
		&d.Country,
		&d.Amount,
		&d.Status,
		&d.Source,
		&d.ContactID,
		&d.Anonymous,
		&d.Message,
		&d.Notes,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const insertDonorSQL = `
	INSERT INTO donors (id, contact_info_id, name, email, phone, country, amount, status, source, contact_id, anonymous, message, notes)
	VALUES ($1, NULLIF($2, '')::uuid, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, NULLIF($10, '')::uuid, $11, NULLIF($12, ''), NULLIF($13, ''))
	RETURNING created_at, updated_at
`

// insertDonor is shared with the leads repository so both run the same
// statement inside or outside a transaction.
func insertDonor(ctx context.Context, q rowQueryer, d *domain.Donor) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return q.QueryRowContext(ctx, insertDonorSQL,
		d.ID, d.ContactInfoID, d.Name, d.Email, d.Phone, d.Country, d.Amount,
		d.Status, d.Source, d.ContactID, d.Anonymous, d.Message, d.Notes,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *PostgresDonorsRepository) CreateDonor(ctx context.Context, d *domain.Donor) error {
	if err := insertDonor(ctx, r.db, d); err != nil {
		return fmt.Errorf("failed to create donor: %w", err)
	}
	return nil
}

func (r *PostgresDonorsRepository) GetDonor(ctx context.Context, id string) (*domain.Donor, error) {
	d, err := scanDonor(r.db.QueryRowContext(ctx,
		`SELECT `+donorColumns+` FROM donors WHERE id::text = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("donor %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get donor: %w", err)
	}
	return d, nil
}

func (r *PostgresDonorsRepository) ListDonors(ctx context.Context, filter DonorsFilter) ([]*domain.Donor, error) {
	where := []string{"1=1"}
	args := []any{}
	argIdx := 1

	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Source != "" {
		where = append(where, fmt.Sprintf("source = $%d", argIdx))
		args = append(args, filter.Source)
		argIdx++
	}

	query := `SELECT ` + donorColumns + ` FROM donors WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list donors: %w", err)
	}
	defer rows.Close()

	var out []*domain.Donor
	for rows.Next() {
		d, err := scanDonor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan donor: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PostgresDonorsRepository) DeleteDonor(ctx context.Context, id string) error {
	return execDelete(ctx, r.db, `DELETE FROM donors WHERE id::text = $1`, "donor", id)
}

func (r *PostgresDonorsRepository) CountDonorsByStatus(ctx context.Context) (map[string]int, error) {
	return countBy(ctx, r.db, `SELECT status, COUNT(*) FROM donors GROUP BY status`)
}
