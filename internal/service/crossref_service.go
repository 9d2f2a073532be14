package service

import (
	"context"
	"fmt"

	"github.com/brandonbohn/adebackend/internal/domain"
	"github.com/brandonbohn/adebackend/internal/events"
	"github.com/brandonbohn/adebackend/internal/repository"

	"go.uber.org/zap"
)

// CrossReferenceService turns donation and volunteering contact
// submissions into donor or volunteer leads, at most one per identity and kind.
type CrossReferenceService struct {
	leads     repository.LeadsRepository
	publisher events.Publisher
	logger    *zap.Logger
}

func NewCrossReferenceService(leads repository.LeadsRepository, publisher events.Publisher, logger *zap.Logger) *CrossReferenceService {
	return &CrossReferenceService{leads: leads, publisher: publisher, logger: logger}
}

// leadCreatedEvent payload of lead.created
type leadCreatedEvent struct {
	Type          string `json:"type"`
	ID            string `json:"id"`
	ContactID     string `json:"contactId"`
	ContactInfoID string `json:"contactInfoId"`
}

// Dispatch creates the lead implied by c.Reason. It returns nil when the
// reason carries no lead or the identity already has one of that kind.
func (s *CrossReferenceService) Dispatch(ctx context.Context, c *domain.Contact) (*domain.LeadReference, error) {
	if c == nil || c.ContactInfoID == "" {
		return nil, fmt.Errorf("contact has no identity")
	}

	var (
		kind    domain.LeadKind
		leadID  string
		created bool
		err     error
	)
	switch domain.ContactReason(c.Reason) {
	case domain.ReasonDonation:
		kind = domain.LeadDonor
		d := &domain.Donor{
			ContactInfoID: c.ContactInfoID,
			Name:          c.Name,
			Email:         c.Email,
			Phone:         c.Phone,
			Amount:        0,
			Status:        domain.DonorStatusPotential,
			Source:        domain.SourceContactForm,
			ContactID:     c.ID,
			Notes:         "Interested in donation. Subject: " + c.Subject,
		}
		created, err = s.leads.CreateDonorLead(ctx, d)
		leadID = d.ID
	case domain.ReasonVolunteering:
		kind = domain.LeadVolunteer
		location := c.Organization
		if location == "" {
			location = "Not specified"
		}
		v := &domain.Volunteer{
			ContactInfoID:   c.ContactInfoID,
			Name:            c.Name,
			Email:           c.Email,
			Phone:           c.Phone,
			Location:        location,
			BasedIn:         "remote",
			Availability:    "To be determined",
			Interests:       []string{},
			LanguagesSpoken: []string{},
			Status:          domain.VolunteerStatusInterested,
			Source:          domain.SourceContactForm,
			ContactID:       c.ID,
			Notes:           "Interested in volunteering. Subject: " + c.Subject,
		}
		created, err = s.leads.CreateVolunteerLead(ctx, v)
		leadID = v.ID
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s lead: %w", kind, err)
	}
	if !created {
		s.logger.Debug("Lead already exists for identity",
			zap.String("kind", string(kind)),
			zap.String("contact_info_id", c.ContactInfoID),
		)
		return nil, nil
	}

	ref := &domain.LeadReference{Type: kind.ResponseType(), ID: leadID}
	s.logger.Info("Lead created from contact",
		zap.String("type", ref.Type),
		zap.String("lead_id", ref.ID),
		zap.String("contact_id", c.ID),
	)
	if err := s.publisher.Publish(ctx, events.LeadCreated, leadCreatedEvent{
		Type:          ref.Type,
		ID:            ref.ID,
		ContactID:     c.ID,
		ContactInfoID: c.ContactInfoID,
	}); err != nil {
		s.logger.Warn("Failed to publish lead event", zap.String("lead_id", ref.ID), zap.Error(err))
	}
	return ref, nil
}
