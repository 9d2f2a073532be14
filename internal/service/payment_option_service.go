package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/brandonbohn/adebackend/internal/domain"
	"github.com/brandonbohn/adebackend/internal/repository"

	"go.uber.org/zap"
)

// PaymentOptionService admin CRUD for payment options.
type PaymentOptionService struct {
	repo   repository.PaymentOptionsRepository
	logger *zap.Logger
}

func NewPaymentOptionService(repo repository.PaymentOptionsRepository, logger *zap.Logger) *PaymentOptionService {
	return &PaymentOptionService{repo: repo, logger: logger}
}

// PaymentOptionRequest create/update body
type PaymentOptionRequest struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

func (req *PaymentOptionRequest) toOption() (*domain.PaymentOption, error) {
	p := &domain.PaymentOption{
		Type:        strings.ToLower(strings.TrimSpace(req.Type)),
		Label:       strings.TrimSpace(req.Label),
		Description: strings.TrimSpace(req.Description),
	}
	if p.Type == "" {
		return nil, ValidationError("type", "type is required")
	}
	if !domain.IsValidPaymentOptionType(p.Type) {
		return nil, ValidationError("type", "type must be mpesa, paypal, flutterwave, or other")
	}
	if p.Label == "" {
		return nil, ValidationError("label", "label is required")
	}
	return p, nil
}

func (s *PaymentOptionService) ListPaymentOptions(ctx context.Context) ([]*domain.PaymentOption, error) {
	out, err := s.repo.ListPaymentOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment options: %w", err)
	}
	return out, nil
}

func (s *PaymentOptionService) GetPaymentOption(ctx context.Context, id string) (*domain.PaymentOption, error) {
	p, err := s.repo.GetPaymentOption(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Payment option not found", "get payment option")
	}
	return p, nil
}

func (s *PaymentOptionService) CreatePaymentOption(ctx context.Context, req PaymentOptionRequest) (*domain.PaymentOption, error) {
	p, err := req.toOption()
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreatePaymentOption(ctx, p); err != nil {
		s.logger.Error("CreatePaymentOption failed", zap.Error(err))
		return nil, fmt.Errorf("failed to create payment option: %w", err)
	}
	s.logger.Info("Payment option created", zap.String("id", p.ID), zap.String("type", p.Type))
	return p, nil
}

func (s *PaymentOptionService) UpdatePaymentOption(ctx context.Context, id string, req PaymentOptionRequest) (*domain.PaymentOption, error) {
	p, err := req.toOption()
	if err != nil {
		return nil, err
	}
	p.ID = id
	if err := s.repo.UpdatePaymentOption(ctx, p); err != nil {
		return nil, notFoundOr(err, "Payment option not found", "update payment option")
	}
	s.logger.Info("Payment option updated", zap.String("id", id))
	return p, nil
}

func (s *PaymentOptionService) DeletePaymentOption(ctx context.Context, id string) error {
	if err := s.repo.DeletePaymentOption(ctx, id); err != nil {
		return notFoundOr(err, "Payment option not found", "delete payment option")
	}
	s.logger.Info("Payment option deleted", zap.String("id", id))
	return nil
}
