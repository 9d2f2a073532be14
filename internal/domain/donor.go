package domain

import "time"

// Donor a donor or donor-lead (donors table)
type Donor struct {
	ID            string    `db:"id" json:"_id"`
	ContactInfoID string    `db:"contact_info_id" json:"contactInfoId,omitempty"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email,omitempty"`
	Phone         string    `db:"phone" json:"phone,omitempty"`
	Country       string    `db:"country" json:"country,omitempty"`
	Amount        float64   `db:"amount" json:"amount"`
	Status        string    `db:"status" json:"status"` // active, potential
	Source        string    `db:"source" json:"source"` // donation-form, contact-form, admin
	ContactID     string    `db:"contact_id" json:"contactId,omitempty"`
	Anonymous     bool      `db:"anonymous" json:"anonymousDonation"`
	Message       string    `db:"message" json:"message,omitempty"`
	Notes         string    `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// Donor statuses
const (
	DonorStatusActive    = "active"
	DonorStatusPotential = "potential"
)

// Record sources shared by donors and volunteers
const (
	SourceContactForm   = "contact-form"
	SourceDonationForm  = "donation-form"
	SourceVolunteerForm = "volunteer-form"
	SourceAdmin         = "admin"
)
