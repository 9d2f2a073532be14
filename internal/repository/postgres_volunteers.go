package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/brandonbohn/adebackend/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresVolunteersRepository volunteers table
type PostgresVolunteersRepository struct {
	db *sql.DB
}

func NewPostgresVolunteersRepository(db *sql.DB) *PostgresVolunteersRepository {
	return &PostgresVolunteersRepository{db: db}
}

var _ VolunteersRepository = (*PostgresVolunteersRepository)(nil)

const volunteerColumns = `
	id::text,
	COALESCE(contact_info_id::text, ''),
	name,
	email,
	COALESCE(phone, ''),
	location,
	based_in,
	availability,
	interests,
	COALESCE(other_interest, ''),
	COALESCE(experience, ''),
	languages_spoken,
	status,
	source,
	COALESCE(contact_id::text, ''),
	COALESCE(notes, ''),
	created_at,
	updated_at`

func scanVolunteer(row rowScanner) (*domain.Volunteer, error) {
	var v domain.Volunteer
	err := row.Scan(
		&v.ID,
		&v.ContactInfoID,
		&v.Name,
		&v.Email,
		&v.Phone,
		&v.Location,
		&v.BasedIn,
		&v.Availability,
		pq.Array(&v.Interests),
		&v.OtherInterest,
		&v.Experience,
		pq.Array(&v.LanguagesSpoken),
		&v.Status,
		&v.Source,
		&v.ContactID,
		&v.Notes,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

const insertVolunteerSQL = `
	INSERT INTO volunteers (id, contact_info_id, name, email, phone, location, based_in, availability,
		interests, other_interest, experience, languages_spoken, status, source, contact_id, notes)
	VALUES ($1, NULLIF($2, '')::uuid, $3, $4, NULLIF($5, ''), $6, $7, $8,
		$9, NULLIF($10, ''), NULLIF($11, ''), $12, $13, $14, NULLIF($15, '')::uuid, NULLIF($16, ''))
	RETURNING created_at, updated_at
`

func insertVolunteer(ctx context.Context, q rowQueryer, v *domain.Volunteer) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Interests == nil {
		v.Interests = []string{}
	}
	if v.LanguagesSpoken == nil {
		v.LanguagesSpoken = []string{}
	}
	return q.QueryRowContext(ctx, insertVolunteerSQL,
		v.ID, v.ContactInfoID, v.Name, v.Email, v.Phone, v.Location, v.BasedIn, v.Availability,
		pq.Array(v.Interests), v.OtherInterest, v.Experience, pq.Array(v.LanguagesSpoken),
		v.Status, v.Source, v.ContactID, v.Notes,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
}

func (r *PostgresVolunteersRepository) CreateVolunteer(ctx context.Context, v *domain.Volunteer) error {
	if err := insertVolunteer(ctx, r.db, v); err != nil {
		return fmt.Errorf("failed to create volunteer: %w", err)
	}
	return nil
}

func (r *PostgresVolunteersRepository) GetVolunteer(ctx context.Context, id string) (*domain.Volunteer, error) {
	v, err := scanVolunteer(r.db.QueryRowContext(ctx,
		`SELECT `+volunteerColumns+` FROM volunteers WHERE id::text = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("volunteer %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get volunteer: %w", err)
	}
	return v, nil
}

func (r *PostgresVolunteersRepository) ListVolunteers(ctx context.Context, filter VolunteersFilter) ([]*domain.Volunteer, error) {
	where := []string{"1=1"}
	args := []any{}
	argIdx := 1

	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.BasedIn != "" {
		where = append(where, fmt.Sprintf("based_in = $%d", argIdx))
		args = append(args, filter.BasedIn)
		argIdx++
	}

	query := `SELECT ` + volunteerColumns + ` FROM volunteers WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}
	defer rows.Close()

	var out []*domain.Volunteer
	for rows.Next() {
		v, err := scanVolunteer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan volunteer: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *PostgresVolunteersRepository) UpdateVolunteerStatus(ctx context.Context, id, status string) (*domain.Volunteer, error) {
	v, err := scanVolunteer(r.db.QueryRowContext(ctx, `
		UPDATE volunteers SET status = $2, updated_at = NOW()
		WHERE id::text = $1
		RETURNING `+volunteerColumns, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("volunteer %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update volunteer status: %w", err)
	}
	return v, nil
}

func (r *PostgresVolunteersRepository) DeleteVolunteer(ctx context.Context, id string) error {
	return execDelete(ctx, r.db, `DELETE FROM volunteers WHERE id::text = $1`, "volunteer", id)
}

func (r *PostgresVolunteersRepository) CountVolunteersByStatus(ctx context.Context) (map[string]int, error) {
	return countBy(ctx, r.db, `SELECT status, COUNT(*) FROM volunteers GROUP BY status`)
}
