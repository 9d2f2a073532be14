package domain

import "time"

// Volunteer a volunteer or volunteer-lead (volunteers table)
type Volunteer struct {
	ID              string    `db:"id" json:"_id"`
	ContactInfoID   string    `db:"contact_info_id" json:"contactInfoId,omitempty"`
	Name            string    `db:"name" json:"name"`
	Email           string    `db:"email" json:"email"`
	Phone           string    `db:"phone" json:"phone,omitempty"`
	Location        string    `db:"location" json:"location"`
	BasedIn         string    `db:"based_in" json:"basedIn"` // nairobi, kenya, remote
	Availability    string    `db:"availability" json:"availability"`
	Interests       []string  `db:"interests" json:"interests"`
	OtherInterest   string    `db:"other_interest" json:"otherInterest,omitempty"`
	Experience      string    `db:"experience" json:"experience,omitempty"`
	LanguagesSpoken []string  `db:"languages_spoken" json:"languagesSpoken"`
	Status          string    `db:"status" json:"status"`
	Source          string    `db:"source" json:"source"`
	ContactID       string    `db:"contact_id" json:"contactId,omitempty"`
	Notes           string    `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// Volunteer statuses
const (
	VolunteerStatusPending    = "pending"
	VolunteerStatusInterested = "interested"
	VolunteerStatusActive     = "active"
	VolunteerStatusInactive   = "inactive"
)

// IsValidVolunteerStatus reports whether s is a known volunteer status.
func IsValidVolunteerStatus(s string) bool {
	switch s {
	case VolunteerStatusPending, VolunteerStatusInterested, VolunteerStatusActive, VolunteerStatusInactive:
		return true
	}
	return false
}

// IsValidBasedIn reports whether s is a known location type.
func IsValidBasedIn(s string) bool {
	return s == "nairobi" || s == "kenya" || s == "remote"
}
