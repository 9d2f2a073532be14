package service

import (
	"context"
	"testing"
	"time"

	"github.com/brandonbohn/adebackend/internal/domain"
	"github.com/brandonbohn/adebackend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCartService(t *testing.T) {
	svc := NewCartService(store.NewMemoryCartStore(24*time.Hour), zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateCart(ctx, " ")
	requireCode(t, err, CodeValidation, "donorId")

	cart, err := svc.CreateCart(ctx, "donor-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.AddItem(ctx, cart.ID, domain.CartItem{ProductID: "p1", Quantity: 0, Amount: 5})
	requireCode(t, err, CodeValidation, "quantity")
	_, err = svc.AddItem(ctx, cart.ID, domain.CartItem{ProductID: "p1", Quantity: 1, Amount: -1})
	requireCode(t, err, CodeValidation, "amount")

	_, err = svc.AddItem(ctx, cart.ID, domain.CartItem{ProductID: "uniform", Quantity: 2, Amount: 2500})
	require.NoError(t, err)
	cart, err = svc.AddItem(ctx, cart.ID, domain.CartItem{ProductID: "meal", Quantity: 1, Amount: 0})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 5000.0, cart.Total())

	_, err = svc.RemoveItem(ctx, cart.ID, 2)
	requireCode(t, err, CodeValidation, "index")
	_, err = svc.RemoveItem(ctx, cart.ID, -1)
	requireCode(t, err, CodeValidation, "index")

	cart, err = svc.RemoveItem(ctx, cart.ID, 0)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "meal", cart.Items[0].ProductID)

	got, err := svc.GetCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)

	_, err = svc.GetCart(ctx, "missing")
	requireCode(t, err, CodeNotFound, "")
	_, err = svc.AddItem(ctx, "missing", domain.CartItem{ProductID: "p", Quantity: 1})
	requireCode(t, err, CodeNotFound, "")
}
