package repository

import (
	"context"
	"errors"
	"time"

	"github.com/brandonbohn/adebackend/internal/domain"
)

// ErrNotFound is returned (possibly wrapped) when a record does not exist.
var ErrNotFound = errors.New("record not found")

// IdentityRepository contact identity store
type IdentityRepository interface {
	// ResolveIdentity atomically finds or creates the identity matching the
	// normalized fields' lookup key and merges empty fields first-write-wins.
	ResolveIdentity(ctx context.Context, fields domain.IdentityFields) (*domain.ContactInfo, error)
	GetContactInfo(ctx context.Context, id string) (*domain.ContactInfo, error)
}

// ContactsFilter list filter; empty fields match everything
type ContactsFilter struct {
	Status string
	Reason string
}

// ContactsRepository contact-form submissions
type ContactsRepository interface {
	CreateContact(ctx context.Context, c *domain.Contact) error
	GetContact(ctx context.Context, id string) (*domain.Contact, error)
	ListContacts(ctx context.Context, filter ContactsFilter) ([]*domain.Contact, error)
	// UpdateContactStatus sets status; respondedAt/respondedBy only overwrite when non-empty.
	UpdateContactStatus(ctx context.Context, id, status, respondedBy string, respondedAt *time.Time) (*domain.Contact, error)
	DeleteContact(ctx context.Context, id string) error
	CountContactsByStatus(ctx context.Context) (map[string]int, error)
}

// DonorsFilter list filter
type DonorsFilter struct {
	Status string
	Source string
}

// DonorsRepository donors and donor-leads
type DonorsRepository interface {
	CreateDonor(ctx context.Context, d *domain.Donor) error
	GetDonor(ctx context.Context, id string) (*domain.Donor, error)
	ListDonors(ctx context.Context, filter DonorsFilter) ([]*domain.Donor, error)
	DeleteDonor(ctx context.Context, id string) error
	CountDonorsByStatus(ctx context.Context) (map[string]int, error)
}

// VolunteersFilter list filter
type VolunteersFilter struct {
	Status  string
	BasedIn string
}

// VolunteersRepository volunteers and volunteer-leads
type VolunteersRepository interface {
	CreateVolunteer(ctx context.Context, v *domain.Volunteer) error
	GetVolunteer(ctx context.Context, id string) (*domain.Volunteer, error)
	ListVolunteers(ctx context.Context, filter VolunteersFilter) ([]*domain.Volunteer, error)
	UpdateVolunteerStatus(ctx context.Context, id, status string) (*domain.Volunteer, error)
	DeleteVolunteer(ctx context.Context, id string) error
	CountVolunteersByStatus(ctx context.Context) (map[string]int, error)
}

// DonationsFilter list filter
type DonationsFilter struct {
	DonorID  string
	Currency string
}

// DonationsRepository append-only donation ledger
type DonationsRepository interface {
	CreateDonation(ctx context.Context, d *domain.Donation) error
	ListDonations(ctx context.Context, filter DonationsFilter) ([]*domain.Donation, error)
	TotalsByCurrency(ctx context.Context) ([]domain.CurrencyTotal, error)
}

// LeadsRepository creates leads guarded by the lead_refs marker.
// Each call returns created=false when the identity already has a lead of that kind.
type LeadsRepository interface {
	CreateDonorLead(ctx context.Context, d *domain.Donor) (bool, error)
	CreateVolunteerLead(ctx context.Context, v *domain.Volunteer) (bool, error)
}

// PaymentOptionsRepository admin-managed payment options
type PaymentOptionsRepository interface {
	CreatePaymentOption(ctx context.Context, p *domain.PaymentOption) error
	GetPaymentOption(ctx context.Context, id string) (*domain.PaymentOption, error)
	ListPaymentOptions(ctx context.Context) ([]*domain.PaymentOption, error)
	UpdatePaymentOption(ctx context.Context, p *domain.PaymentOption) error
	DeletePaymentOption(ctx context.Context, id string) error
}

// ContentRepository typed site sections stored as JSON
type ContentRepository interface {
	GetSection(ctx context.Context, key string) (*domain.ContentSection, error)
	ListSections(ctx context.Context) ([]*domain.ContentSection, error)
	UpsertSection(ctx context.Context, s *domain.ContentSection) error
}

// Store bundles every repository the service layer needs.
type Store struct {
	Identity       IdentityRepository
	Contacts       ContactsRepository
	Donors         DonorsRepository
	Volunteers     VolunteersRepository
	Donations      DonationsRepository
	Leads          LeadsRepository
	PaymentOptions PaymentOptionsRepository
	Content        ContentRepository
}
