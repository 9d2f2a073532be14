package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/brandonbohn/adebackend/internal/domain"

	"github.com/google/uuid"
)

// ---- donations ----

func (m *MemoryStore) CreateDonation(_ context.Context, d *domain.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.CreatedAt = time.Now().UTC()
	cp := *d
	m.donations = append(m.donations, &cp)
	return nil
}

func (m *MemoryStore) ListDonations(_ context.Context, filter DonationsFilter) ([]*domain.Donation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Donation, 0, len(m.donations))
	// reverse insertion order: newest first for equal dates
	for i := len(m.donations) - 1; i >= 0; i-- {
		d := m.donations[i]
		if filter.DonorID != "" && d.DonorID != filter.DonorID {
			continue
		}
		if filter.Currency != "" && d.Currency != filter.Currency {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *MemoryStore) TotalsByCurrency(_ context.Context) ([]domain.CurrencyTotal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byCurrency := map[string]*domain.CurrencyTotal{}
	for _, d := range m.donations {
		t, ok := byCurrency[d.Currency]
		if !ok {
			t = &domain.CurrencyTotal{Currency: d.Currency}
			byCurrency[d.Currency] = t
		}
		t.Total += d.Amount
		t.Count++
	}
	out := make([]domain.CurrencyTotal, 0, len(byCurrency))
	for _, t := range byCurrency {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out, nil
}

// ---- leads ----

func (m *MemoryStore) CreateDonorLead(_ context.Context, d *domain.Donor) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if !m.claimLeadLocked(d.ContactInfoID, domain.LeadDonor, d.ID, d.ContactID) {
		return false, nil
	}
	m.insertDonorLocked(d)
	return true, nil
}

func (m *MemoryStore) CreateVolunteerLead(_ context.Context, v *domain.Volunteer) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if !m.claimLeadLocked(v.ContactInfoID, domain.LeadVolunteer, v.ID, v.ContactID) {
		return false, nil
	}
	m.insertVolunteerLocked(v)
	return true, nil
}

func (m *MemoryStore) claimLeadLocked(contactInfoID string, kind domain.LeadKind, leadID, contactID string) bool {
	k := leadKey{contactInfoID: contactInfoID, kind: kind}
	if _, exists := m.leadRefs[k]; exists {
		return false
	}
	m.leadRefs[k] = domain.LeadRef{
		ContactInfoID: contactInfoID,
		Kind:          kind,
		LeadID:        leadID,
		ContactID:     contactID,
		CreatedAt:     time.Now().UTC(),
	}
	return true
}

// ---- payment options ----

func (m *MemoryStore) CreatePaymentOption(_ context.Context, p *domain.PaymentOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	m.paymentOptions[p.ID] = &cp
	return nil
}

func (m *MemoryStore) GetPaymentOption(_ context.Context, id string) (*domain.PaymentOption, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.paymentOptions[id]
	if !ok {
		return nil, fmt.Errorf("payment option %s: %w", id, ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryStore) ListPaymentOptions(_ context.Context) ([]*domain.PaymentOption, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.PaymentOption, 0, len(m.paymentOptions))
	for _, p := range m.paymentOptions {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) UpdatePaymentOption(_ context.Context, p *domain.PaymentOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.paymentOptions[p.ID]
	if !ok {
		return fmt.Errorf("payment option %s: %w", p.ID, ErrNotFound)
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	m.paymentOptions[p.ID] = &cp
	return nil
}

func (m *MemoryStore) DeletePaymentOption(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.paymentOptions[id]; !ok {
		return fmt.Errorf("payment option %s: %w", id, ErrNotFound)
	}
	delete(m.paymentOptions, id)
	return nil
}

// ---- content ----

func (m *MemoryStore) GetSection(_ context.Context, key string) (*domain.ContentSection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.content[key]
	if !ok {
		return nil, fmt.Errorf("content section %s: %w", key, ErrNotFound)
	}
	cp := *s
	cp.Data = append([]byte(nil), s.Data...)
	return &cp, nil
}

func (m *MemoryStore) ListSections(_ context.Context) ([]*domain.ContentSection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.ContentSection, 0, len(m.content))
	for _, s := range m.content {
		cp := *s
		cp.Data = append([]byte(nil), s.Data...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *MemoryStore) UpsertSection(_ context.Context, s *domain.ContentSection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.UpdatedAt = time.Now().UTC()
	cp := *s
	cp.Data = append([]byte(nil), s.Data...)
	m.content[s.Key] = &cp
	return nil
}
