package service

import (
	"context"
	"fmt"

	"github.com/brandonbohn/adebackend/internal/domain"
	"github.com/brandonbohn/adebackend/internal/repository"

	"go.uber.org/zap"
)

// IdentityService resolves form submissions to a canonical ContactInfo.
type IdentityService struct {
	repo   repository.IdentityRepository
	logger *zap.Logger
}

func NewIdentityService(repo repository.IdentityRepository, logger *zap.Logger) *IdentityService {
	return &IdentityService{repo: repo, logger: logger}
}

// ResolveIdentity finds or creates the identity for fields. The lookup key is
// the normalized email, else the phone, else the name. Existing non-empty
// fields are never overwritten.
func (s *IdentityService) ResolveIdentity(ctx context.Context, fields domain.IdentityFields) (*domain.ContactInfo, error) {
	fields = fields.Normalize()
	if fields.Name == "" {
		return nil, ValidationError("name", "Name is required")
	}

	ci, err := s.repo.ResolveIdentity(ctx, fields)
	if err != nil {
		kind, _ := fields.LookupKey()
		s.logger.Error("ResolveIdentity failed", zap.String("lookup", string(kind)), zap.Error(err))
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}
	return ci, nil
}

// GetContactInfo returns one identity by id.
func (s *IdentityService) GetContactInfo(ctx context.Context, id string) (*domain.ContactInfo, error) {
	ci, err := s.repo.GetContactInfo(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Contact info not found", "get contact info")
	}
	return ci, nil
}
