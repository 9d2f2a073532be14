package domain

import "time"

// Contact a contact-form submission (contacts table)
type Contact struct {
	ID            string     `db:"id" json:"_id"`
	ContactInfoID string     `db:"contact_info_id" json:"contactInfoId"`
	Name          string     `db:"name" json:"name"`
	Organization  string     `db:"organization" json:"organization,omitempty"`
	Email         string     `db:"email" json:"email"`
	Phone         string     `db:"phone" json:"phone,omitempty"`
	Reason        string     `db:"reason" json:"reason"`
	Subject       string     `db:"subject" json:"subject"`
	Message       string     `db:"message" json:"message"`
	Status        string     `db:"status" json:"status"`
	RespondedAt   *time.Time `db:"responded_at" json:"respondedAt,omitempty"`
	RespondedBy   string     `db:"responded_by" json:"respondedBy,omitempty"`
	Notes         string     `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}

// ContactReason declared purpose of a contact submission
type ContactReason string

const (
	ReasonVolunteering ContactReason = "volunteering"
	ReasonDonation     ContactReason = "donation"
	ReasonPartnership  ContactReason = "partnership"
	ReasonGeneral      ContactReason = "general"
	ReasonOther        ContactReason = "other"
)

// IsValid reports whether r is one of the known reasons.
func (r ContactReason) IsValid() bool {
	switch r {
	case ReasonVolunteering, ReasonDonation, ReasonPartnership, ReasonGeneral, ReasonOther:
		return true
	}
	return false
}

// Contact statuses
const (
	ContactStatusNew       = "new"
	ContactStatusResponded = "responded"
	ContactStatusClosed    = "closed"
)

// IsValidContactStatus reports whether s is a known contact status.
func IsValidContactStatus(s string) bool {
	return s == ContactStatusNew || s == ContactStatusResponded || s == ContactStatusClosed
}
