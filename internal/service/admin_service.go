package service

import (
	"context"
	"fmt"

	"github.com/brandonbohn/adebackend/internal/domain"
	"github.com/brandonbohn/adebackend/internal/export"
	"github.com/brandonbohn/adebackend/internal/repository"

	"go.uber.org/zap"
)

// AdminService dashboard summary and spreadsheet exports.
type AdminService struct {
	store  *repository.Store
	logger *zap.Logger
}

func NewAdminService(store *repository.Store, logger *zap.Logger) *AdminService {
	return &AdminService{store: store, logger: logger}
}

// Summary dashboard counters
type Summary struct {
	Contacts       map[string]int         `json:"contacts"`
	Donors         map[string]int         `json:"donors"`
	Volunteers     map[string]int         `json:"volunteers"`
	DonationTotals []domain.CurrencyTotal `json:"donationTotals"`
}

func (s *AdminService) Summary(ctx context.Context) (*Summary, error) {
	contacts, err := s.store.Contacts.CountContactsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}
	donors, err := s.store.Donors.CountDonorsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count donors: %w", err)
	}
	volunteers, err := s.store.Volunteers.CountVolunteersByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count volunteers: %w", err)
	}
	totals, err := s.store.Donations.TotalsByCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total donations: %w", err)
	}
	if totals == nil {
		totals = []domain.CurrencyTotal{}
	}
	return &Summary{
		Contacts:       contacts,
		Donors:         donors,
		Volunteers:     volunteers,
		DonationTotals: totals,
	}, nil
}

// ExportDonations renders every donation as xlsx.
func (s *AdminService) ExportDonations(ctx context.Context) ([]byte, error) {
	rows, err := s.store.Donations.ListDonations(ctx, repository.DonationsFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	data, err := export.Donations(rows)
	if err != nil {
		s.logger.Error("Donations export failed", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Donations exported", zap.Int("rows", len(rows)))
	return data, nil
}

// ExportDonors renders every donor and donor-lead as xlsx.
func (s *AdminService) ExportDonors(ctx context.Context) ([]byte, error) {
	rows, err := s.store.Donors.ListDonors(ctx, repository.DonorsFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list donors: %w", err)
	}
	data, err := export.Donors(rows)
	if err != nil {
		s.logger.Error("Donors export failed", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Donors exported", zap.Int("rows", len(rows)))
	return data, nil
}
