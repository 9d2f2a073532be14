package repository

import (
	"database/sql"
	"sync"

	"github.com/brandonbohn/adebackend/internal/domain"
)

// MemoryStore backs every repository when the DB is disabled or unreachable.
// A single mutex covers all maps so lead markers and lead rows change together.
// IDs are uuid; data is lost on restart.
type MemoryStore struct {
	mu sync.RWMutex

	identities     map[string]*domain.ContactInfo // id -> identity
	contacts       map[string]*domain.Contact
	donors         map[string]*domain.Donor
	volunteers     map[string]*domain.Volunteer
	donations      []*domain.Donation
	leadRefs       map[leadKey]domain.LeadRef
	paymentOptions map[string]*domain.PaymentOption
	content        map[string]*domain.ContentSection
}

type leadKey struct {
	contactInfoID string
	kind          domain.LeadKind
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		identities:     map[string]*domain.ContactInfo{},
		contacts:       map[string]*domain.Contact{},
		donors:         map[string]*domain.Donor{},
		volunteers:     map[string]*domain.Volunteer{},
		leadRefs:       map[leadKey]domain.LeadRef{},
		paymentOptions: map[string]*domain.PaymentOption{},
		content:        map[string]*domain.ContentSection{},
	}
}

var (
	_ IdentityRepository       = (*MemoryStore)(nil)
	_ ContactsRepository       = (*MemoryStore)(nil)
	_ DonorsRepository         = (*MemoryStore)(nil)
	_ VolunteersRepository     = (*MemoryStore)(nil)
	_ DonationsRepository      = (*MemoryStore)(nil)
	_ LeadsRepository          = (*MemoryStore)(nil)
	_ PaymentOptionsRepository = (*MemoryStore)(nil)
	_ ContentRepository        = (*MemoryStore)(nil)
)

// Store exposes m through every repository interface.
func (m *MemoryStore) Store() *Store {
	return &Store{
		Identity:       m,
		Contacts:       m,
		Donors:         m,
		Volunteers:     m,
		Donations:      m,
		Leads:          m,
		PaymentOptions: m,
		Content:        m,
	}
}

// NewPostgresStore wires the Postgres repositories over db.
func NewPostgresStore(db *sql.DB) *Store {
	return &Store{
		Identity:       NewPostgresIdentityRepository(db),
		Contacts:       NewPostgresContactsRepository(db),
		Donors:         NewPostgresDonorsRepository(db),
		Volunteers:     NewPostgresVolunteersRepository(db),
		Donations:      NewPostgresDonationsRepository(db),
		Leads:          NewPostgresLeadsRepository(db),
		PaymentOptions: NewPostgresPaymentOptionsRepository(db),
		Content:        NewPostgresContentRepository(db),
	}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
