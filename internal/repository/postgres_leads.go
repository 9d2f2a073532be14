package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/brandonbohn/adebackend/internal/domain"

	"github.com/google/uuid"
)

// PostgresLeadsRepository writes lead_refs and the lead row in one transaction.
type PostgresLeadsRepository struct {
	db *sql.DB
}

func NewPostgresLeadsRepository(db *sql.DB) *PostgresLeadsRepository {
	return &PostgresLeadsRepository{db: db}
}

var _ LeadsRepository = (*PostgresLeadsRepository)(nil)

func (r *PostgresLeadsRepository) CreateDonorLead(ctx context.Context, d *domain.Donor) (bool, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return r.withMarker(ctx, d.ContactInfoID, domain.LeadDonor, d.ID, d.ContactID, func(tx *sql.Tx) error {
		return insertDonor(ctx, tx, d)
	})
}

func (r *PostgresLeadsRepository) CreateVolunteerLead(ctx context.Context, v *domain.Volunteer) (bool, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return r.withMarker(ctx, v.ContactInfoID, domain.LeadVolunteer, v.ID, v.ContactID, func(tx *sql.Tx) error {
		return insertVolunteer(ctx, tx, v)
	})
}

// withMarker claims (contactInfoID, kind) and runs insert only if the claim is new.
func (r *PostgresLeadsRepository) withMarker(ctx context.Context, contactInfoID string, kind domain.LeadKind, leadID, contactID string, insert func(tx *sql.Tx) error) (bool, error) {
	if contactInfoID == "" {
		return false, fmt.Errorf("contact_info_id is required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO lead_refs (contact_info_id, kind, lead_id, contact_id)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid)
		ON CONFLICT (contact_info_id, kind) DO NOTHING`,
		contactInfoID, string(kind), leadID, contactID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to claim %s lead: %w", kind, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to claim %s lead: %w", kind, err)
	}
	if n == 0 {
		return false, nil
	}

	if err := insert(tx); err != nil {
		return false, fmt.Errorf("failed to create %s lead: %w", kind, err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit %s lead: %w", kind, err)
	}
	return true, nil
}
