package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/brandonbohn/adebackend/internal/domain"
	"github.com/brandonbohn/adebackend/internal/events"
	"github.com/brandonbohn/adebackend/internal/repository"

	"go.uber.org/zap"
)

// DonorService donor intake from the donation form.
type DonorService struct {
	donors    repository.DonorsRepository
	identity  *IdentityService
	publisher events.Publisher
	logger    *zap.Logger
}

func NewDonorService(donors repository.DonorsRepository, identity *IdentityService, publisher events.Publisher, logger *zap.Logger) *DonorService {
	return &DonorService{donors: donors, identity: identity, publisher: publisher, logger: logger}
}

// CreateDonorRequest step one of the donation flow. Name is used when
// FirstName and LastName are both empty.
type CreateDonorRequest struct {
	FirstName         string  `json:"firstName"`
	LastName          string  `json:"lastName"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	Country           string  `json:"country"`
	Amount            float64 `json:"amount"`
	AnonymousDonation bool    `json:"anonymousDonation"`
	Message           string  `json:"message"`
}

// CreateDonorResponse 201 body
type CreateDonorResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Donor   *domain.Donor `json:"donor"`
}

func (s *DonorService) CreateDonor(ctx context.Context, req CreateDonorRequest) (*CreateDonorResponse, error) {
	name := joinName(req.FirstName, req.LastName)
	if name == "" {
		name = strings.TrimSpace(req.Name)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)

	if !minLen(name, 2) {
		return nil, ValidationError("name", "Name must be at least 2 characters")
	}
	if !isValidEmail(email) {
		return nil, ValidationError("email", "Please enter a valid email address")
	}
	if phone != "" {
		if n := digitCount(stripPhone(phone)); n < 10 || n > 15 {
			return nil, ValidationError("phone", "Phone number must have 10 to 15 digits")
		}
	}
	if req.Amount < 0 {
		return nil, ValidationError("amount", "Amount cannot be negative")
	}

	ci, err := s.identity.ResolveIdentity(ctx, domain.IdentityFields{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Country: req.Country,
	})
	if err != nil {
		return nil, err
	}

	d := &domain.Donor{
		ContactInfoID: ci.ID,
		Name:          name,
		Email:         email,
		Phone:         phone,
		Country:       strings.TrimSpace(req.Country),
		Amount:        req.Amount,
		Status:        domain.DonorStatusActive,
		Source:        domain.SourceDonationForm,
		Anonymous:     req.AnonymousDonation,
		Message:       strings.TrimSpace(req.Message),
	}
	if err := s.donors.CreateDonor(ctx, d); err != nil {
		s.logger.Error("CreateDonor failed", zap.String("contact_info_id", ci.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to create donor: %w", err)
	}
	s.logger.Info("Donor created", zap.String("donor_id", d.ID), zap.String("contact_info_id", ci.ID))

	if err := s.publisher.Publish(ctx, events.DonorCreated, d); err != nil {
		s.logger.Warn("Failed to publish donor event", zap.String("donor_id", d.ID), zap.Error(err))
	}

	return &CreateDonorResponse{
		Success: true,
		Message: "Thank you for supporting girls in Kibera!",
		Donor:   d,
	}, nil
}

func (s *DonorService) ListDonors(ctx context.Context, filter repository.DonorsFilter) ([]*domain.Donor, error) {
	out, err := s.donors.ListDonors(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list donors: %w", err)
	}
	return out, nil
}

func (s *DonorService) GetDonor(ctx context.Context, id string) (*domain.Donor, error) {
	d, err := s.donors.GetDonor(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Donor not found", "get donor")
	}
	return d, nil
}

func (s *DonorService) DeleteDonor(ctx context.Context, id string) error {
	if err := s.donors.DeleteDonor(ctx, id); err != nil {
		return notFoundOr(err, "Donor not found", "delete donor")
	}
	s.logger.Info("Donor deleted", zap.String("donor_id", id))
	return nil
}
