package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/brandonbohn/adebackend/internal/domain"

	"github.com/google/uuid"
)

func (m *MemoryStore) CreateVolunteer(_ context.Context, v *domain.Volunteer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertVolunteerLocked(v)
	return nil
}

func (m *MemoryStore) insertVolunteerLocked(v *domain.Volunteer) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Interests == nil {
		v.Interests = []string{}
	}
	if v.LanguagesSpoken == nil {
		v.LanguagesSpoken = []string{}
	}
	now := time.Now().UTC()
	v.CreatedAt, v.UpdatedAt = now, now
	m.volunteers[v.ID] = cloneVolunteer(v)
}

func cloneVolunteer(v *domain.Volunteer) *domain.Volunteer {
	cp := *v
	cp.Interests = cloneStrings(v.Interests)
	cp.LanguagesSpoken = cloneStrings(v.LanguagesSpoken)
	return &cp
}

func (m *MemoryStore) GetVolunteer(_ context.Context, id string) (*domain.Volunteer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.volunteers[id]
	if !ok {
		return nil, fmt.Errorf("volunteer %s: %w", id, ErrNotFound)
	}
	return cloneVolunteer(v), nil
}

func (m *MemoryStore) ListVolunteers(_ context.Context, filter VolunteersFilter) ([]*domain.Volunteer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Volunteer, 0, len(m.volunteers))
	for _, v := range m.volunteers {
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		if filter.BasedIn != "" && v.BasedIn != filter.BasedIn {
			continue
		}
		out = append(out, cloneVolunteer(v))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) UpdateVolunteerStatus(_ context.Context, id, status string) (*domain.Volunteer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.volunteers[id]
	if !ok {
		return nil, fmt.Errorf("volunteer %s: %w", id, ErrNotFound)
	}
	v.Status = status
	v.UpdatedAt = time.Now().UTC()
	return cloneVolunteer(v), nil
}

func (m *MemoryStore) DeleteVolunteer(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.volunteers[id]; !ok {
		return fmt.Errorf("volunteer %s: %w", id, ErrNotFound)
	}
	delete(m.volunteers, id)
	return nil
}

func (m *MemoryStore) CountVolunteersByStatus(_ context.Context) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := map[string]int{}
	for _, v := range m.volunteers {
		out[v.Status]++
	}
	return out, nil
}
