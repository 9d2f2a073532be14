package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/brandonbohn/adebackend/internal/domain"

	"github.com/google/uuid"
)

// ResolveIdentity scans for the lookup key and merges or inserts under the write lock.
func (m *MemoryStore) ResolveIdentity(_ context.Context, fields domain.IdentityFields) (*domain.ContactInfo, error) {
	kind, key := fields.LookupKey()

	m.mu.Lock()
	defer m.mu.Unlock()

	var match *domain.ContactInfo
	for _, ci := range m.identities {
		var v string
		switch kind {
		case domain.IdentityByEmail:
			v = ci.Email
		case domain.IdentityByPhone:
			v = ci.Phone
		default:
			v = ci.Name
		}
		if v == key && (match == nil || ci.CreatedAt.Before(match.CreatedAt)) {
			match = ci
		}
	}

	now := time.Now().UTC()
	if match != nil {
		fields.MergeInto(match)
		match.UpdatedAt = now
		return cloneContactInfo(match), nil
	}

	ci := &domain.ContactInfo{
		ID:              uuid.NewString(),
		Name:            fields.Name,
		Email:           fields.Email,
		Phone:           fields.Phone,
		Country:         fields.Country,
		Address:         fields.Address,
		PreferredMethod: "email",
		Tags:            []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.identities[ci.ID] = ci
	return cloneContactInfo(ci), nil
}

func (m *MemoryStore) GetContactInfo(_ context.Context, id string) (*domain.ContactInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ci, ok := m.identities[id]
	if !ok {
		return nil, fmt.Errorf("contact info %s: %w", id, ErrNotFound)
	}
	return cloneContactInfo(ci), nil
}

func cloneContactInfo(ci *domain.ContactInfo) *domain.ContactInfo {
	c := *ci
	c.Tags = cloneStrings(ci.Tags)
	return &c
}
