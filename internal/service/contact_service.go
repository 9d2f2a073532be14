package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brandonbohn/adebackend/internal/domain"
	"github.com/brandonbohn/adebackend/internal/events"
	"github.com/brandonbohn/adebackend/internal/notify"
	"github.com/brandonbohn/adebackend/internal/repository"

	"go.uber.org/zap"
)

// ContactService handles contact-form submissions and their follow-up.
type ContactService struct {
	contacts   repository.ContactsRepository
	identity   *IdentityService
	crossRef   *CrossReferenceService
	mailer     notify.Mailer
	publisher  events.Publisher
	alerts     notify.AlertPublisher
	adminEmail string
	logger     *zap.Logger
}

// ContactServiceDeps collaborators of ContactService
type ContactServiceDeps struct {
	Contacts   repository.ContactsRepository
	Identity   *IdentityService
	CrossRef   *CrossReferenceService
	Mailer     notify.Mailer
	Publisher  events.Publisher
	Alerts     notify.AlertPublisher
	AdminEmail string // empty: no admin notification
}

func NewContactService(deps ContactServiceDeps, logger *zap.Logger) *ContactService {
	return &ContactService{
		contacts:   deps.Contacts,
		identity:   deps.Identity,
		crossRef:   deps.CrossRef,
		mailer:     deps.Mailer,
		publisher:  deps.Publisher,
		alerts:     deps.Alerts,
		adminEmail: deps.AdminEmail,
		logger:     logger,
	}
}

// CreateContactRequest contact form body
type CreateContactRequest struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Reason       string `json:"reason"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
}

// ContactSummary contact fields echoed back to the submitter
type ContactSummary struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateContactResponse 201 body
type CreateContactResponse struct {
	Success     bool                  `json:"success"`
	Message     string                `json:"message"`
	Contact     ContactSummary        `json:"contact"`
	LeadCreated *domain.LeadReference `json:"leadCreated,omitempty"`
}

func (req *CreateContactRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	req.Organization = strings.TrimSpace(req.Organization)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.Reason = strings.TrimSpace(req.Reason)
	if req.Reason == "" {
		req.Reason = string(domain.ReasonGeneral)
	}
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
}

func (req *CreateContactRequest) validate() error {
	if !minLen(req.Name, 2) {
		return ValidationError("name", "Name must be at least 2 characters")
	}
	if !isValidEmail(req.Email) {
		return ValidationError("email", "Please enter a valid email address")
	}
	if !domain.ContactReason(req.Reason).IsValid() {
		return ValidationError("reason", "Please select a valid reason for contact")
	}
	if !minLen(req.Subject, 3) {
		return ValidationError("subject", "Subject must be at least 3 characters")
	}
	if !minLen(req.Message, 10) {
		return ValidationError("message", "Message must be at least 10 characters")
	}
	return nil
}

// CreateContact validates, resolves the identity, persists the contact and
// runs the best-effort follow-ups (lead, emails, event, alert).
func (s *ContactService) CreateContact(ctx context.Context, req CreateContactRequest) (*CreateContactResponse, error) {
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

	c := &domain.Contact{
		ContactInfoID: ci.ID,
		Name:          req.Name,
		Organization:  req.Organization,
		Email:         req.Email,
		Phone:         req.Phone,
		Reason:        req.Reason,
		Subject:       req.Subject,
		Message:       req.Message,
		Status:        domain.ContactStatusNew,
	}
	if err := s.contacts.CreateContact(ctx, c); err != nil {
		s.logger.Error("CreateContact failed", zap.String("contact_info_id", ci.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	lead, err := s.crossRef.Dispatch(ctx, c)
	if err != nil {
		s.logger.Warn("Cross-reference failed", zap.String("contact_id", c.ID), zap.String("reason", c.Reason), zap.Error(err))
		lead = nil
	}

	s.sendContactEmails(ctx, c)
	if err := s.publisher.Publish(ctx, events.ContactCreated, c); err != nil {
		s.logger.Warn("Failed to publish contact event", zap.String("contact_id", c.ID), zap.Error(err))
	}
	if err := s.alerts.PublishAlert(ctx, notify.Alert{
		Kind:      events.ContactCreated,
		Title:     fmt.Sprintf("New contact (%s) from %s", c.Reason, c.Name),
		Reference: c.ID,
	}); err != nil {
		s.logger.Warn("Failed to publish contact alert", zap.String("contact_id", c.ID), zap.Error(err))
	}

	return &CreateContactResponse{
		Success: true,
		Message: "Thank you for contacting us! We will get back to you soon.",
		Contact: ContactSummary{
			ID:        c.ID,
			Name:      c.Name,
			Email:     c.Email,
			Subject:   c.Subject,
			Reason:    c.Reason,
			CreatedAt: c.CreatedAt,
		},
		LeadCreated: lead,
	}, nil
}

func (s *ContactService) sendContactEmails(ctx context.Context, c *domain.Contact) {
	msg, err := notify.ContactConfirmation(c.Email, c.Name, c.Subject)
	if err != nil {
		s.logger.Warn("Failed to render contact confirmation", zap.Error(err))
	} else if !s.mailer.Send(ctx, msg) {
		s.logger.Warn("Contact confirmation not delivered", zap.String("contact_id", c.ID))
	}

	if s.adminEmail == "" {
		return
	}
	msg, err = notify.AdminContactNotification(s.adminEmail, notify.AdminContactData{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Reason:  c.Reason,
		Subject: c.Subject,
		Message: c.Message,
	})
	if err != nil {
		s.logger.Warn("Failed to render admin notification", zap.Error(err))
		return
	}
	if !s.mailer.Send(ctx, msg) {
		s.logger.Warn("Admin notification not delivered", zap.String("contact_id", c.ID))
	}
}

// ListContacts returns contacts matching filter, newest first.
func (s *ContactService) ListContacts(ctx context.Context, filter repository.ContactsFilter) ([]*domain.Contact, error) {
	if filter.Status != "" && !domain.IsValidContactStatus(filter.Status) {
		return nil, ValidationError("status", "Status must be new, responded, or closed")
	}
	out, err := s.contacts.ListContacts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return out, nil
}

func (s *ContactService) GetContact(ctx context.Context, id string) (*domain.Contact, error) {
	c, err := s.contacts.GetContact(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Contact not found", "get contact")
	}
	return c, nil
}

// UpdateContactStatus moves a contact through new/responded/closed.
// Moving to responded stamps responded_at and responded_by.
func (s *ContactService) UpdateContactStatus(ctx context.Context, id, status, respondedBy string) (*domain.Contact, error) {
	status = strings.TrimSpace(status)
	if !domain.IsValidContactStatus(status) {
		return nil, ValidationError("status", "Status must be new, responded, or closed")
	}
	var respondedAt *time.Time
	if status == domain.ContactStatusResponded {
		now := time.Now().UTC()
		respondedAt = &now
	} else {
		respondedBy = ""
	}
	c, err := s.contacts.UpdateContactStatus(ctx, id, status, respondedBy, respondedAt)
	if err != nil {
		return nil, notFoundOr(err, "Contact not found", "update contact status")
	}
	s.logger.Info("Contact status updated", zap.String("contact_id", id), zap.String("status", status))
	return c, nil
}

func (s *ContactService) DeleteContact(ctx context.Context, id string) error {
	if err := s.contacts.DeleteContact(ctx, id); err != nil {
		return notFoundOr(err, "Contact not found", "delete contact")
	}
	s.logger.Info("Contact deleted", zap.String("contact_id", id))
	return nil
}
