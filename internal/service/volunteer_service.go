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

// VolunteerService volunteer interest intake.
type VolunteerService struct {
	volunteers repository.VolunteersRepository
	identity   *IdentityService
	publisher  events.Publisher
	logger     *zap.Logger
}

func NewVolunteerService(volunteers repository.VolunteersRepository, identity *IdentityService, publisher events.Publisher, logger *zap.Logger) *VolunteerService {
	return &VolunteerService{volunteers: volunteers, identity: identity, publisher: publisher, logger: logger}
}

// CreateVolunteerRequest volunteer form body. FirstName/LastName and Skills
// are the frontend's names for Name and Interests.
type CreateVolunteerRequest struct {
	Name            string   `json:"name"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Location        string   `json:"location"`
	BasedIn         string   `json:"basedIn"`
	Availability    string   `json:"availability"`
	Interests       []string `json:"interests"`
	Skills          []string `json:"skills"`
	OtherInterest   string   `json:"otherInterest"`
	Experience      string   `json:"experience"`
	LanguagesSpoken []string `json:"languagesSpoken"`
}

// CreateVolunteerResponse 201 body
type CreateVolunteerResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Volunteer *domain.Volunteer `json:"volunteer"`
}

func (req *CreateVolunteerRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		req.Name = joinName(req.FirstName, req.LastName)
	}
	if len(req.Interests) == 0 {
		req.Interests = req.Skills
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.BasedIn = strings.ToLower(strings.TrimSpace(req.BasedIn))
	if req.BasedIn == "" {
		req.BasedIn = "remote"
	}
}

func (req *CreateVolunteerRequest) validate() error {
	if !minLen(req.Name, 2) {
		return ValidationError("name", "Name must be at least 2 characters")
	}
	if !isValidEmail(req.Email) {
		return ValidationError("email", "Please enter a valid email address")
	}
	if !volunteerPhone.MatchString(stripPhone(req.Phone)) {
		return ValidationError("phone", "Please enter a valid phone number")
	}
	if len(req.Interests) == 0 {
		return ValidationError("interests", "Please select at least one area of interest")
	}
	if !domain.IsValidBasedIn(req.BasedIn) {
		return ValidationError("basedIn", "basedIn must be nairobi, kenya, or remote")
	}
	return nil
}

func (s *VolunteerService) CreateVolunteer(ctx context.Context, req CreateVolunteerRequest) (*CreateVolunteerResponse, error) {
	req.normalize()
	if err := req.validate(); err != nil {
		return nil, err
	}

	ci, err := s.identity.ResolveIdentity(ctx, domain.IdentityFields{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return nil, err
	}

	languages := req.LanguagesSpoken
	if languages == nil {
		languages = []string{}
	}
	v := &domain.Volunteer{
		ContactInfoID:   ci.ID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Location:        strings.TrimSpace(req.Location),
		BasedIn:         req.BasedIn,
		Availability:    strings.TrimSpace(req.Availability),
		Interests:       req.Interests,
		OtherInterest:   strings.TrimSpace(req.OtherInterest),
		Experience:      strings.TrimSpace(req.Experience),
		LanguagesSpoken: languages,
		Status:          domain.VolunteerStatusPending,
		Source:          domain.SourceVolunteerForm,
	}
	if err := s.volunteers.CreateVolunteer(ctx, v); err != nil {
		s.logger.Error("CreateVolunteer failed", zap.String("contact_info_id", ci.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to create volunteer: %w", err)
	}
	s.logger.Info("Volunteer created", zap.String("volunteer_id", v.ID), zap.String("contact_info_id", ci.ID))

	if err := s.publisher.Publish(ctx, events.VolunteerCreated, v); err != nil {
		s.logger.Warn("Failed to publish volunteer event", zap.String("volunteer_id", v.ID), zap.Error(err))
	}

	return &CreateVolunteerResponse{
		Success:   true,
		Message:   "Thank you for your interest in volunteering with ADE! We will contact you soon.",
		Volunteer: v,
	}, nil
}

func (s *VolunteerService) ListVolunteers(ctx context.Context, filter repository.VolunteersFilter) ([]*domain.Volunteer, error) {
	out, err := s.volunteers.ListVolunteers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}
	return out, nil
}

func (s *VolunteerService) GetVolunteer(ctx context.Context, id string) (*domain.Volunteer, error) {
	v, err := s.volunteers.GetVolunteer(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Volunteer not found", "get volunteer")
	}
	return v, nil
}

func (s *VolunteerService) UpdateVolunteerStatus(ctx context.Context, id, status string) (*domain.Volunteer, error) {
	status = strings.TrimSpace(status)
	if !domain.IsValidVolunteerStatus(status) {
		return nil, ValidationError("status", "Status must be pending, interested, active, or inactive")
	}
	v, err := s.volunteers.UpdateVolunteerStatus(ctx, id, status)
	if err != nil {
		return nil, notFoundOr(err, "Volunteer not found", "update volunteer status")
	}
	s.logger.Info("Volunteer status updated", zap.String("volunteer_id", id), zap.String("status", status))
	return v, nil
}

func (s *VolunteerService) DeleteVolunteer(ctx context.Context, id string) error {
	if err := s.volunteers.DeleteVolunteer(ctx, id); err != nil {
		return notFoundOr(err, "Volunteer not found", "delete volunteer")
	}
	s.logger.Info("Volunteer deleted", zap.String("volunteer_id", id))
	return nil
}
