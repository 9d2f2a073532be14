package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/brandonbohn/adebackend/internal/domain"

	"github.com/google/uuid"
)

func (m *MemoryStore) CreateContact(_ context.Context, c *domain.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = domain.ContactStatusNew
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	cp := *c
	m.contacts[c.ID] = &cp
	return nil
}

func (m *MemoryStore) GetContact(_ context.Context, id string) (*domain.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.contacts[id]
	if !ok {
		return nil, fmt.Errorf("contact %s: %w", id, ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (m *MemoryStore) ListContacts(_ context.Context, filter ContactsFilter) ([]*domain.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Contact, 0, len(m.contacts))
	for _, c := range m.contacts {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Reason != "" && c.Reason != filter.Reason {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) UpdateContactStatus(_ context.Context, id, status, respondedBy string, respondedAt *time.Time) (*domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.contacts[id]
	if !ok {
		return nil, fmt.Errorf("contact %s: %w", id, ErrNotFound)
	}
	c.Status = status
	if respondedAt != nil {
		t := *respondedAt
		c.RespondedAt = &t
	}
	if respondedBy != "" {
		c.RespondedBy = respondedBy
	}
	c.UpdatedAt = time.Now().UTC()
	cp := *c
	return &cp, nil
}

func (m *MemoryStore) DeleteContact(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.contacts[id]; !ok {
		return fmt.Errorf("contact %s: %w", id, ErrNotFound)
	}
	delete(m.contacts, id)
	return nil
}

func (m *MemoryStore) CountContactsByStatus(_ context.Context) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := map[string]int{}
	for _, c := range m.contacts {
		out[c.Status]++
	}
	return out, nil
}
