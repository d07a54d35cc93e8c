package services_test

import (
	"context"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartService(t *testing.T) (*services.CartService, *orderFixture) {
	t.Helper()
	f := newOrderFixture(t)
	return services.NewCartService(f.carts, f.products), f
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()
	svc, f := newCartService(t)
	f.seedProduct(t, 1, "25.00", true)
	f.seedProduct(t, 2, "5.00", false)

	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.AddItem(ctx, "user-1", services.AddCartItemInput{ProductID: 1, Quantity: 2})
	require.NoError(t, err)

	// Price changes after the first add do not move the snapshot.
	p, err := f.products.GetByID(ctx, 1)
	require.NoError(t, err)
	p.Price = decimal.RequireFromString("30.00")
	require.NoError(t, f.products.Update(ctx, p))

	cart, err = svc.AddItem(ctx, "user-1", services.AddCartItemInput{ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.True(t, cart.Items[0].PriceSnapshot.Equal(decimal.RequireFromString("25.00")))

	count, err := svc.Count(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	_, err = svc.AddItem(ctx, "user-1", services.AddCartItemInput{ProductID: 2, Quantity: 1})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.AddItem(ctx, "user-1", services.AddCartItemInput{ProductID: 404, Quantity: 1})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.AddItem(ctx, "user-1", services.AddCartItemInput{ProductID: 1, Quantity: 0})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestCartService_ItemOwnership(t *testing.T) {
	ctx := context.Background()
	svc, f := newCartService(t)
	f.seedProduct(t, 1, "25.00", true)

	cart, err := svc.AddItem(ctx, "owner", services.AddCartItemInput{ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	_, err = svc.UpdateItem(ctx, "stranger", itemID, services.UpdateCartItemInput{Quantity: 5})
	assert.ErrorIs(t, err, services.ErrForbidden)
	_, err = svc.RemoveItem(ctx, "stranger", itemID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	// A stranger with a cart of their own is still refused.
	_, err = svc.AddItem(ctx, "stranger", services.AddCartItemInput{ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.UpdateItem(ctx, "stranger", itemID, services.UpdateCartItemInput{Quantity: 5})
	assert.ErrorIs(t, err, services.ErrForbidden)

	cart, err = svc.UpdateItem(ctx, "owner", itemID, services.UpdateCartItemInput{Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	cart, err = svc.RemoveItem(ctx, "owner", itemID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.RemoveItem(ctx, "owner", itemID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCartService_CheckoutDrainsCart(t *testing.T) {
	ctx := context.Background()
	svc, f := newCartService(t)
	f.seedUser(t, "user-1", models.RoleMember, true)
	f.seedProduct(t, 1, "25.00", true)

	_, err := svc.AddItem(ctx, "user-1", services.AddCartItemInput{ProductID: 1, Quantity: 2})
	require.NoError(t, err)

	_, err = f.svc.CreateOrder(ctx, "user-1", orderInput(services.OrderItemInput{ProductID: 1, Quantity: 2}))
	require.NoError(t, err)

	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	_, err = f.carts.GetByUserID(ctx, "user-1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
