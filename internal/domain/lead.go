package domain

import "time"

// LeadKind kind of lead produced from a contact submission
type LeadKind string

const (
	LeadDonor     LeadKind = "donor"
	LeadVolunteer LeadKind = "volunteer"
)

// LeadRef marker row (lead_refs table), UNIQUE(contact_info_id, kind)
type LeadRef struct {
	ContactInfoID string    `db:"contact_info_id"`
	Kind          LeadKind  `db:"kind"`
	LeadID        string    `db:"lead_id"`
	ContactID     string    `db:"contact_id"`
	CreatedAt     time.Time `db:"created_at"`
}

// LeadReference returned to the contact form caller
type LeadReference struct {
	Type string `json:"type"` // donor-lead, volunteer-lead
	ID   string `json:"id"`
}

// ResponseType wire name of the lead kind.
func (k LeadKind) ResponseType() string {
	return string(k) + "-lead"
}
