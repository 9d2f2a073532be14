package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brandonbohn/adebackend/internal/domain"

	"github.com/google/uuid"
)

// PostgresContactsRepository contacts table
type PostgresContactsRepository struct {
	db *sql.DB
}

func NewPostgresContactsRepository(db *sql.DB) *PostgresContactsRepository {
	return &PostgresContactsRepository{db: db}
}

var _ ContactsRepository = (*PostgresContactsRepository)(nil)

const contactColumns = `
	id::text,
	contact_info_id::text,
	name,
	COALESCE(organization, ''),
	email,
	COALESCE(phone, ''),
	reason,
	subject,
	message,
	status,
	responded_at,
	COALESCE(responded_by, ''),
	COALESCE(notes, ''),
	created_at,
	updated_at`

func scanContact(row rowScanner) (*domain.Contact, error) {
	var c domain.Contact
	var respondedAt sql.NullTime
	err := row.Scan(
		&c.ID,
		&c.ContactInfoID,
		&c.Name,
		&c.Organization,
		&c.Email,
		&c.Phone,
		&c.Reason,
		&c.Subject,
		&c.Message,
		&c.Status,
		&respondedAt,
		&c.RespondedBy,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if respondedAt.Valid {
		t := respondedAt.Time
		c.RespondedAt = &t
	}
	return &c, nil
}

// CreateContact inserts c, assigning ID and timestamps.
func (r *PostgresContactsRepository) CreateContact(ctx context.Context, c *domain.Contact) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = domain.ContactStatusNew
	}
	query := `
		INSERT INTO contacts (id, contact_info_id, name, organization, email, phone, reason, subject, message, status)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.ContactInfoID, c.Name, c.Organization, c.Email, c.Phone,
		c.Reason, c.Subject, c.Message, c.Status,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

func (r *PostgresContactsRepository) GetContact(ctx context.Context, id string) (*domain.Contact, error) {
	c, err := scanContact(r.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id::text = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return c, nil
}

// ListContacts newest first.
func (r *PostgresContactsRepository) ListContacts(ctx context.Context, filter ContactsFilter) ([]*domain.Contact, error) {
	where := []string{"1=1"}
	args := []any{}
	argIdx := 1

	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Reason != "" {
		where = append(where, fmt.Sprintf("reason = $%d", argIdx))
		args = append(args, filter.Reason)
		argIdx++
	}

	query := `SELECT ` + contactColumns + ` FROM contacts WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var out []*domain.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresContactsRepository) UpdateContactStatus(ctx context.Context, id, status, respondedBy string, respondedAt *time.Time) (*domain.Contact, error) {
	query := `
		UPDATE contacts SET
			status = $2,
			responded_at = COALESCE($3, responded_at),
			responded_by = COALESCE(NULLIF($4, ''), responded_by),
			updated_at = NOW()
		WHERE id::text = $1
		RETURNING ` + contactColumns

	c, err := scanContact(r.db.QueryRowContext(ctx, query, id, status, respondedAt, respondedBy))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update contact status: %w", err)
	}
	return c, nil
}

func (r *PostgresContactsRepository) DeleteContact(ctx context.Context, id string) error {
	return execDelete(ctx, r.db, `DELETE FROM contacts WHERE id::text = $1`, "contact", id)
}

func (r *PostgresContactsRepository) CountContactsByStatus(ctx context.Context) (map[string]int, error) {
	return countBy(ctx, r.db, `SELECT status, COUNT(*) FROM contacts GROUP BY status`)
}

// execDelete runs a single-row delete and maps zero rows to ErrNotFound.
func execDelete(ctx context.Context, db *sql.DB, query, entity, id string) error {
	res, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", entity, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", entity, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	return nil
}

// countBy scans (label, count) rows into a map.
func countBy(ctx context.Context, db *sql.DB, query string) (map[string]int, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		out[label] = n
	}
	return out, rows.Err()
}
