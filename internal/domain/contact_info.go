package domain

import (
	"strings"
	"time"
)

// ContactInfo canonical identity of a real-world person (contact_info table).
// One row per normalized email; phone, then name, when email is absent.
type ContactInfo struct {
	ID              string    `db:"id" json:"_id"`
	Name            string    `db:"name" json:"name"`                                   // NOT NULL
	Email           string    `db:"email" json:"email,omitempty"`                       // lowercase, UNIQUE when non-null
	Phone           string    `db:"phone" json:"phone,omitempty"`                       // trimmed
	Country         string    `db:"country" json:"country,omitempty"`
	Address         string    `db:"address" json:"address,omitempty"`
	PreferredMethod string    `db:"preferred_method" json:"preferredMethod"`            // email, phone, none
	Consent         bool      `db:"consent" json:"consent"`
	Tags            []string  `db:"tags" json:"tags"`
	Notes           string    `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// IdentityKind which field an identity lookup matched on
type IdentityKind string

const (
	IdentityByEmail IdentityKind = "email"
	IdentityByPhone IdentityKind = "phone"
	IdentityByName  IdentityKind = "name"
)

// IdentityFields the tuple supplied by a form submission
type IdentityFields struct {
	Name    string
	Email   string
	Phone   string
	Country string
	Address string
}

// Normalize trims every field and lowercases the email.
func (f IdentityFields) Normalize() IdentityFields {
	return IdentityFields{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.ToLower(strings.TrimSpace(f.Email)),
		Phone:   strings.TrimSpace(f.Phone),
		Country: strings.TrimSpace(f.Country),
		Address: strings.TrimSpace(f.Address),
	}
}

// LookupKey returns the field the identity is matched on and its value.
// Call on normalized fields.
func (f IdentityFields) LookupKey() (IdentityKind, string) {
	switch {
	case f.Email != "":
		return IdentityByEmail, f.Email
	case f.Phone != "":
		return IdentityByPhone, f.Phone
	default:
		return IdentityByName, f.Name
	}
}

// MergeInto fills empty fields of ci from f. Populated fields are kept.
func (f IdentityFields) MergeInto(ci *ContactInfo) {
	if ci.Email == "" {
		ci.Email = f.Email
	}
	if ci.Phone == "" {
		ci.Phone = f.Phone
	}
	if ci.Country == "" {
		ci.Country = f.Country
	}
	if ci.Address == "" {
		ci.Address = f.Address
	}
}
