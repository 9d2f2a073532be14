package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/brandonbohn/adebackend/internal/domain"
	"github.com/brandonbohn/adebackend/internal/store"

	"go.uber.org/zap"
)

// CartStore holds carts; store.MemoryCartStore is the process-lifetime implementation.
type CartStore interface {
	Create(ctx context.Context, donorID string) (*domain.Cart, error)
	Get(ctx context.Context, id string) (*domain.Cart, error)
	Update(ctx context.Context, id string, fn func(c *domain.Cart) error) (*domain.Cart, error)
}

// CartService donor carts for multi-item giving.
type CartService struct {
	carts  CartStore
	logger *zap.Logger
}

func NewCartService(carts CartStore, logger *zap.Logger) *CartService {
	return &CartService{carts: carts, logger: logger}
}

func (s *CartService) CreateCart(ctx context.Context, donorID string) (*domain.Cart, error) {
	donorID = strings.TrimSpace(donorID)
	if donorID == "" {
		return nil, ValidationError("donorId", "donorId is required")
	}
	c, err := s.carts.Create(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	s.logger.Debug("Cart created", zap.String("cart_id", c.ID), zap.String("donor_id", donorID))
	return c, nil
}

func (s *CartService) GetCart(ctx context.Context, id string) (*domain.Cart, error) {
	c, err := s.carts.Get(ctx, id)
	if err != nil {
		return nil, cartError(err, "get cart")
	}
	return c, nil
}

func (s *CartService) AddItem(ctx context.Context, id string, item domain.CartItem) (*domain.Cart, error) {
	item.ProductID = strings.TrimSpace(item.ProductID)
	if item.ProductID == "" {
		return nil, ValidationError("productId", "productId is required")
	}
	if item.Quantity <= 0 {
		return nil, ValidationError("quantity", "quantity must be greater than 0")
	}
	if math.IsNaN(item.Amount) || item.Amount < 0 {
		return nil, ValidationError("amount", "amount cannot be negative")
	}
	c, err := s.carts.Update(ctx, id, func(c *domain.Cart) error {
		c.Items = append(c.Items, item)
		return nil
	})
	if err != nil {
		return nil, cartError(err, "add cart item")
	}
	return c, nil
}

func (s *CartService) RemoveItem(ctx context.Context, id string, index int) (*domain.Cart, error) {
	c, err := s.carts.Update(ctx, id, func(c *domain.Cart) error {
		if index < 0 || index >= len(c.Items) {
			return ValidationError("index", fmt.Sprintf("item index %d out of range", index))
		}
		c.Items = append(c.Items[:index], c.Items[index+1:]...)
		return nil
	})
	if err != nil {
		return nil, cartError(err, "remove cart item")
	}
	return c, nil
}

func cartError(err error, action string) error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	if errors.Is(err, store.ErrCartNotFound) {
		return NotFoundError("Cart not found")
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
