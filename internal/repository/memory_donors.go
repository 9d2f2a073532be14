package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/brandonbohn/adebackend/internal/domain"

	"github.com/google/uuid"
)

func (m *MemoryStore) CreateDonor(_ context.Context, d *domain.Donor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertDonorLocked(d)
	return nil
}

func (m *MemoryStore) insertDonorLocked(d *domain.Donor) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	d.CreatedAt, d.UpdatedAt = now, now
	cp := *d
	m.donors[d.ID] = &cp
}

func (m *MemoryStore) GetDonor(_ context.Context, id string) (*domain.Donor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.donors[id]
	if !ok {
		return nil, fmt.Errorf("donor %s: %w", id, ErrNotFound)
	}
	cp := *d
	return &cp, nil
}

func (m *MemoryStore) ListDonors(_ context.Context, filter DonorsFilter) ([]*domain.Donor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Donor, 0, len(m.donors))
	for _, d := range m.donors {
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		if filter.Source != "" && d.Source != filter.Source {
			continue
		}
		cp := *d
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

func (m *MemoryStore) DeleteDonor(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.donors[id]; !ok {
		return fmt.Errorf("donor %s: %w", id, ErrNotFound)
	}
	delete(m.donors, id)
	return nil
}

func (m *MemoryStore) CountDonorsByStatus(_ context.Context) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := map[string]int{}
	for _, d := range m.donors {
		out[d.Status]++
	}
	return out, nil
}
