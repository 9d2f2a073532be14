package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/brandonbohn/adebackend/internal/domain"
	"github.com/brandonbohn/adebackend/internal/events"
	"github.com/brandonbohn/adebackend/internal/notify"
	"github.com/brandonbohn/adebackend/internal/repository"

	"go.uber.org/zap"
)

// maxDonationAmount is the first value the ledger's NUMERIC(14,2) column cannot hold.
const maxDonationAmount = 1e12

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// DonationService records donations in the append-only ledger.
type DonationService struct {
	donations repository.DonationsRepository
	donors    repository.DonorsRepository
	mailer    notify.Mailer
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewDonationService(donations repository.DonationsRepository, donors repository.DonorsRepository, mailer notify.Mailer, publisher events.Publisher, logger *zap.Logger) *DonationService {
	return &DonationService{
		donations: donations,
		donors:    donors,
		mailer:    mailer,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RecordDonationRequest ledger entry input. Amount is nil when absent.
type RecordDonationRequest struct {
	DonorID      string
	Amount       *float64
	Currency     string
	DonationType string
	Message      string
}

// RecordDonation validates and appends one donation. DonorID is stored as
// given even when it matches no donor.
func (s *DonationService) RecordDonation(ctx context.Context, req RecordDonationRequest) (*domain.Donation, error) {
	if req.Amount == nil {
		return nil, ValidationError("amount", "Missing required field: amount")
	}
	amount := *req.Amount
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, ValidationError("amount", "Amount must be a number")
	}
	if amount <= 0 {
		return nil, ValidationError("amount", "Amount must be greater than 0")
	}
	// stored to the cent
	amount = math.Round(amount*100) / 100
	if amount <= 0 {
		return nil, ValidationError("amount", "Amount must be at least 0.01")
	}
	if amount >= maxDonationAmount {
		return nil, ValidationError("amount", "Amount is too large")
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}
	if !currencyPattern.MatchString(currency) {
		return nil, ValidationError("currency", "Currency must be a 3-letter ISO code")
	}
	donorID := strings.TrimSpace(req.DonorID)
	if len(donorID) > 64 {
		return nil, ValidationError("donorId", "Donor id is too long")
	}
	donationType := strings.TrimSpace(req.DonationType)
	if donationType == "" {
		donationType = string(domain.DonationGeneral)
	}
	if !domain.DonationType(donationType).IsValid() {
		return nil, ValidationError("donationType", "Invalid donation type: "+donationType)
	}

	d := &domain.Donation{
		DonorID:      donorID,
		Amount:       amount,
		Currency:     currency,
		DonationType: donationType,
		Message:      strings.TrimSpace(req.Message),
		Date:         s.now(),
	}
	if err := s.donations.CreateDonation(ctx, d); err != nil {
		s.logger.Error("CreateDonation failed", zap.Error(err))
		return nil, fmt.Errorf("failed to record donation: %w", err)
	}
	s.logger.Info("Donation recorded",
		zap.String("donation_id", d.ID),
		zap.String("donor_id", d.DonorID),
		zap.Float64("amount", d.Amount),
		zap.String("currency", d.Currency),
	)

	s.sendReceipt(ctx, d)
	if err := s.publisher.Publish(ctx, events.DonationRecorded, d); err != nil {
		s.logger.Warn("Failed to publish donation event", zap.String("donation_id", d.ID), zap.Error(err))
	}
	return d, nil
}

// sendReceipt emails the donor when DonorID resolves to a donor with an email.
func (s *DonationService) sendReceipt(ctx context.Context, d *domain.Donation) {
	if d.DonorID == "" {
		return
	}
	donor, err := s.donors.GetDonor(ctx, d.DonorID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Failed to load donor for receipt", zap.String("donor_id", d.DonorID), zap.Error(err))
		}
		return
	}
	if donor.Email == "" {
		return
	}
	msg, err := notify.DonationReceipt(donor.Email, notify.ReceiptData{
		Name:          donor.Name,
		Amount:        d.Amount,
		Currency:      d.Currency,
		DonationType:  d.DonationType,
		Date:          d.Date,
		TransactionID: d.ID,
	})
	if err != nil {
		s.logger.Warn("Failed to render receipt", zap.String("donation_id", d.ID), zap.Error(err))
		return
	}
	if !s.mailer.Send(ctx, msg) {
		s.logger.Warn("Donation receipt not delivered", zap.String("donation_id", d.ID))
	}
}

// ListDonations returns donations, newest first.
func (s *DonationService) ListDonations(ctx context.Context, filter repository.DonationsFilter) ([]*domain.Donation, error) {
	filter.Currency = strings.ToUpper(strings.TrimSpace(filter.Currency))
	out, err := s.donations.ListDonations(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	return out, nil
}
