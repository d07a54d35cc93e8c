package repositories

import (
	"context"

	"storefront/internal/models"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	// GetOrCreate returns the user's cart, creating it when absent. Safe under concurrent callers.
	GetOrCreate(ctx context.Context, userID string) (*models.Cart, error)
	// GetByUserID returns the cart with its items and their products.
	GetByUserID(ctx context.Context, userID string) (*models.Cart, error)
	// AddItem inserts item or, if the product is already in the cart, adds item.Quantity to it.
	AddItem(ctx context.Context, item *models.CartItem) error
	GetItem(ctx context.Context, itemID uint) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error
	DeleteItem(ctx context.Context, itemID uint) error
	// CountItems sums item quantities in the user's cart; no cart counts as zero.
	CountItems(ctx context.Context, userID string) (int64, error)
	// DeleteByUserID removes the user's cart and all of its items. No cart is a no-op.
	DeleteByUserID(ctx context.Context, userID string) error
}
