package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/brandonbohn/adebackend/internal/domain"

	"github.com/google/uuid"
)

var ErrCartNotFound = errors.New("cart not found")

// MemoryCartStore keeps carts in process memory. A cart expires ttl after
// it was created; ttl <= 0 keeps carts for the lifetime of the process.
type MemoryCartStore struct {
	ttl     time.Duration
	mu      sync.RWMutex
	carts   map[string]*domain.Cart
	sweptAt time.Time
	now     func() time.Time
}

func NewMemoryCartStore(ttl time.Duration) *MemoryCartStore {
	return &MemoryCartStore{ttl: ttl, carts: make(map[string]*domain.Cart), now: time.Now}
}

func (s *MemoryCartStore) Create(_ context.Context, donorID string) (*domain.Cart, error) {
	now := s.now().UTC()
	c := &domain.Cart{
		ID:        uuid.NewString(),
		DonorID:   donorID,
		Items:     []domain.CartItem{},
		CreatedAt: now,
	}
	s.mu.Lock()
	s.sweep(now)
	s.carts[c.ID] = c
	s.mu.Unlock()
	return cloneCart(c), nil
}

func (s *MemoryCartStore) Get(_ context.Context, id string) (*domain.Cart, error) {
	now := s.now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[id]
	if !ok || s.expired(c, now) {
		return nil, ErrCartNotFound
	}
	return cloneCart(c), nil
}

// Update applies fn to the stored cart under the write lock. The cart is
// left unchanged when fn returns an error.
func (s *MemoryCartStore) Update(_ context.Context, id string, fn func(c *domain.Cart) error) (*domain.Cart, error) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep(now)
	c, ok := s.carts[id]
	if !ok || s.expired(c, now) {
		return nil, ErrCartNotFound
	}
	next := cloneCart(c)
	if err := fn(next); err != nil {
		return nil, err
	}
	s.carts[id] = next
	return cloneCart(next), nil
}

// Len counts stored carts, expired ones included until the next sweep.
func (s *MemoryCartStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}

func (s *MemoryCartStore) expired(c *domain.Cart, now time.Time) bool {
	return s.ttl > 0 && now.Sub(c.CreatedAt) > s.ttl
}

// sweep drops expired carts at most once per minute. Callers hold the write lock.
func (s *MemoryCartStore) sweep(now time.Time) {
	if s.ttl <= 0 || now.Sub(s.sweptAt) < time.Minute {
		return
	}
	for id, c := range s.carts {
		if s.expired(c, now) {
			delete(s.carts, id)
		}
	}
	s.sweptAt = now
}

func cloneCart(c *domain.Cart) *domain.Cart {
	cp := *c
	cp.Items = append([]domain.CartItem{}, c.Items...)
	return &cp
}
