package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

type AddCartItemInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CartService manages the single cart each member owns.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
}

func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// GetCart returns the user's cart; a user without one gets an empty cart.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return cart, nil
}

// Count sums the quantities in the user's cart.
func (s *CartService) Count(ctx context.Context, userID string) (int64, error) {
	count, err := s.carts.CountItems(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}
	return count, nil
}

// AddItem adds quantity of a product, merging with an existing line for the same product.
// Price snapshots are taken when the product first enters the cart.
func (s *CartService) AddItem(ctx context.Context, userID string, in AddCartItemInput) (*models.Cart, error) {
	if in.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, repoErr(err, "product %d", in.ProductID)
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, in.ProductID)
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	item := &models.CartItem{
		CartID:           cart.ID,
		ProductID:        product.ID,
		Quantity:         in.Quantity,
		PriceSnapshot:    product.Price,
		DiscountSnapshot: product.DiscountPrice,
	}
	if err := s.carts.AddItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}
	return s.GetCart(ctx, userID)
}

func (s *CartService) UpdateItem(ctx context.Context, userID string, itemID uint, in UpdateCartItemInput) (*models.Cart, error) {
	if in.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if err := s.checkOwnership(ctx, userID, itemID); err != nil {
		return nil, err
	}
	if err := s.carts.UpdateItemQuantity(ctx, itemID, in.Quantity); err != nil {
		return nil, repoErr(err, "cart item %d", itemID)
	}
	return s.GetCart(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID string, itemID uint) (*models.Cart, error) {
	if err := s.checkOwnership(ctx, userID, itemID); err != nil {
		return nil, err
	}
	if err := s.carts.DeleteItem(ctx, itemID); err != nil {
		return nil, repoErr(err, "cart item %d", itemID)
	}
	return s.GetCart(ctx, userID)
}

func (s *CartService) checkOwnership(ctx context.Context, userID string, itemID uint) error {
	item, err := s.carts.GetItem(ctx, itemID)
	if err != nil {
		return repoErr(err, "cart item %d", itemID)
	}
	cart, err := s.carts.GetByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: cart item %d belongs to another user", ErrForbidden, itemID)
	}
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}
	if item.CartID != cart.ID {
		return fmt.Errorf("%w: cart item %d belongs to another user", ErrForbidden, itemID)
	}
	return nil
}
