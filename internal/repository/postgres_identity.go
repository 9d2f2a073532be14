package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/brandonbohn/adebackend/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresIdentityRepository contact_info table
type PostgresIdentityRepository struct {
	db *sql.DB
}

func NewPostgresIdentityRepository(db *sql.DB) *PostgresIdentityRepository {
	return &PostgresIdentityRepository{db: db}
}

var _ IdentityRepository = (*PostgresIdentityRepository)(nil)

const contactInfoColumns = `
	id::text,
	name,
	COALESCE(email, ''),
	COALESCE(phone, ''),
	COALESCE(country, ''),
	COALESCE(address, ''),
	preferred_method,
	consent,
	tags,
	COALESCE(notes, ''),
	created_at,
	updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContactInfo(row rowScanner) (*domain.ContactInfo, error) {
	var ci domain.ContactInfo
	err := row.Scan(
		&ci.ID,
		&ci.Name,
		&ci.Email,
		&ci.Phone,
		&ci.Country,
		&ci.Address,
		&ci.PreferredMethod,
		&ci.Consent,
		pq.Array(&ci.Tags),
		&ci.Notes,
		&ci.CreatedAt,
		&ci.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ci, nil
}

// ResolveIdentity finds or creates the identity for fields.
// Email: a single INSERT ... ON CONFLICT against the partial unique index.
// Phone/name: select-then-merge under a transaction-scoped advisory lock on the key.
func (r *PostgresIdentityRepository) ResolveIdentity(ctx context.Context, fields domain.IdentityFields) (*domain.ContactInfo, error) {
	kind, key := fields.LookupKey()
	if kind == domain.IdentityByEmail {
		return r.upsertByEmail(ctx, fields)
	}
	return r.resolveLocked(ctx, kind, key, fields)
}

func (r *PostgresIdentityRepository) upsertByEmail(ctx context.Context, f domain.IdentityFields) (*domain.ContactInfo, error) {
	query := `
		INSERT INTO contact_info (id, name, email, phone, country, address)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))
		ON CONFLICT (email) WHERE email IS NOT NULL
		DO UPDATE SET
			phone = COALESCE(NULLIF(contact_info.phone, ''), EXCLUDED.phone),
			country = COALESCE(NULLIF(contact_info.country, ''), EXCLUDED.country),
			address = COALESCE(NULLIF(contact_info.address, ''), EXCLUDED.address),
			updated_at = NOW()
		RETURNING ` + contactInfoColumns

	ci, err := scanContactInfo(r.db.QueryRowContext(ctx, query,
		uuid.NewString(), f.Name, f.Email, f.Phone, f.Country, f.Address,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert contact info: %w", err)
	}
	return ci, nil
}

func (r *PostgresIdentityRepository) resolveLocked(ctx context.Context, kind domain.IdentityKind, key string, f domain.IdentityFields) (*domain.ContactInfo, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "contact_info:"+string(kind)+":"+key); err != nil {
		return nil, fmt.Errorf("failed to lock identity key: %w", err)
	}

	column := "phone"
	if kind == domain.IdentityByName {
		column = "name"
	}
	selectQuery := `SELECT ` + contactInfoColumns + `
		FROM contact_info
		WHERE ` + column + ` = $1
		ORDER BY created_at
		LIMIT 1`

	existing, err := scanContactInfo(tx.QueryRowContext(ctx, selectQuery, key))
	var ci *domain.ContactInfo
	switch {
	case errors.Is(err, sql.ErrNoRows):
		ci, err = scanContactInfo(tx.QueryRowContext(ctx, `
			INSERT INTO contact_info (id, name, email, phone, country, address)
			VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))
			RETURNING `+contactInfoColumns,
			uuid.NewString(), f.Name, f.Email, f.Phone, f.Country, f.Address,
		))
		if err != nil {
			return nil, fmt.Errorf("failed to insert contact info: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to find contact info: %w", err)
	default:
		ci, err = scanContactInfo(tx.QueryRowContext(ctx, `
			UPDATE contact_info SET
				phone = COALESCE(NULLIF(phone, ''), NULLIF($2, '')),
				country = COALESCE(NULLIF(country, ''), NULLIF($3, '')),
				address = COALESCE(NULLIF(address, ''), NULLIF($4, '')),
				updated_at = NOW()
			WHERE id = $1
			RETURNING `+contactInfoColumns,
			existing.ID, f.Phone, f.Country, f.Address,
		))
		if err != nil {
			return nil, fmt.Errorf("failed to merge contact info: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit identity: %w", err)
	}
	return ci, nil
}

// GetContactInfo loads one identity by id.
func (r *PostgresIdentityRepository) GetContactInfo(ctx context.Context, id string) (*domain.ContactInfo, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	ci, err := scanContactInfo(r.db.QueryRowContext(ctx,
		`SELECT `+contactInfoColumns+` FROM contact_info WHERE id::text = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact info %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contact info: %w", err)
	}
	return ci, nil
}
