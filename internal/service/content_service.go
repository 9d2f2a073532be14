package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brandonbohn/adebackend/internal/domain"
	"github.com/brandonbohn/adebackend/internal/repository"
	"github.com/brandonbohn/adebackend/internal/store"

	"go.uber.org/zap"
)

const (
	contentCacheAll     = "content:all"
	contentCacheSection = "content:section:"
	contentCachePattern = "content:*"
)

// ContentService serves the typed marketing-site sections with a KV read cache.
type ContentService struct {
	repo   repository.ContentRepository
	cache  store.KV
	ttl    time.Duration
	logger *zap.Logger
}

func NewContentService(repo repository.ContentRepository, cache store.KV, ttl time.Duration, logger *zap.Logger) *ContentService {
	return &ContentService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// AllContent body of GET /api/content
type AllContent struct {
	SectionsData map[string]json.RawMessage `json:"sectionsData"`
}

// GetAll returns every stored section keyed by section id.
func (s *ContentService) GetAll(ctx context.Context) (*AllContent, error) {
	if cached, err := s.cache.Get(ctx, contentCacheAll); err == nil {
		var out AllContent
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			return &out, nil
		}
		s.logger.Warn("Discarding unreadable content cache entry", zap.String("key", contentCacheAll))
	} else if !errors.Is(err, store.ErrMiss) {
		s.logger.Warn("Content cache read failed", zap.Error(err))
	}

	sections, err := s.repo.ListSections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list content sections: %w", err)
	}
	out := &AllContent{SectionsData: make(map[string]json.RawMessage, len(sections))}
	for _, sec := range sections {
		out.SectionsData[sec.Key] = sec.Data
	}
	s.fill(ctx, contentCacheAll, out)
	return out, nil
}

// GetSection returns one section. Unknown and unset sections are NOT_FOUND.
func (s *ContentService) GetSection(ctx context.Context, key string) (json.RawMessage, error) {
	key = strings.TrimSpace(key)
	if !domain.IsKnownSection(key) {
		return nil, NotFoundError("Section not found: " + key)
	}
	cacheKey := contentCacheSection + key
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		return json.RawMessage(cached), nil
	} else if !errors.Is(err, store.ErrMiss) {
		s.logger.Warn("Content cache read failed", zap.String("key", cacheKey), zap.Error(err))
	}

	sec, err := s.repo.GetSection(ctx, key)
	if err != nil {
		return nil, notFoundOr(err, "Section not found: "+key, "get content section")
	}
	if err := s.cache.Set(ctx, cacheKey, string(sec.Data), s.ttl); err != nil {
		s.logger.Warn("Content cache write failed", zap.String("key", cacheKey), zap.Error(err))
	}
	return sec.Data, nil
}

// UpdateSection strictly decodes body into the section's record and
// replaces the stored section with it.
func (s *ContentService) UpdateSection(ctx context.Context, key string, body []byte) (json.RawMessage, error) {
	key = strings.TrimSpace(key)
	rec, err := domain.DecodeSection(key, body)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownSection) {
			return nil, ValidationError("section", "Unknown section: "+key)
		}
		return nil, ValidationError("section", err.Error())
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s section: %w", key, err)
	}

	sec := &domain.ContentSection{Key: key, Data: data}
	if err := s.repo.UpsertSection(ctx, sec); err != nil {
		s.logger.Error("UpsertSection failed", zap.String("section", key), zap.Error(err))
		return nil, fmt.Errorf("failed to update content section: %w", err)
	}
	s.invalidate(ctx)
	s.logger.Info("Content section updated", zap.String("section", key))
	return data, nil
}

// Sections lists the registered section ids.
func (s *ContentService) Sections() []string {
	return domain.SectionKeys()
}

func (s *ContentService) fill(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(b), s.ttl); err != nil {
		s.logger.Warn("Content cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *ContentService) invalidate(ctx context.Context) {
	keys, err := s.cache.ScanKeys(ctx, contentCachePattern)
	if err != nil {
		s.logger.Warn("Content cache scan failed", zap.Error(err))
		keys = []string{contentCacheAll}
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		s.logger.Warn("Content cache invalidation failed", zap.Error(err))
	}
}
