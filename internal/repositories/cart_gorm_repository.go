package repositories

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GORMCartRepository struct {
	db *gorm.DB
}

func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

func (r *GORMCartRepository) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	db := r.db.WithContext(ctx)
	cart := models.Cart{UserID: userID}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&cart).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create cart for user %s: %w", userID, translate(err))
	}

	var existing models.Cart
	if err := db.First(&existing, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart for user %s: %w", userID, translate(err))
	}
	return &existing, nil
}

func (r *GORMCartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id ASC") }).
		Preload("Items.Product").
		First(&cart, "user_id = ?", userID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, translate(err))
	}
	return &cart, nil
}

func (r *GORMCartRepository) AddItem(ctx context.Context, item *models.CartItem) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + ?", item.Quantity),
			"updated_at": r.db.NowFunc(),
		}),
	}).Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to add product %d to cart %d: %w", item.ProductID, item.CartID, translate(err))
	}
	return nil
}

func (r *GORMCartRepository) GetItem(ctx context.Context, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).Preload("Product").First(&item, "id = ?", itemID).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart item %d: %w", itemID, translate(err))
	}
	return &item, nil
}

func (r *GORMCartRepository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	res := r.db.WithContext(ctx).Model(&models.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item %d: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %d not found for update: %w", itemID, ErrNotFound)
	}
	return nil
}

func (r *GORMCartRepository) DeleteItem(ctx context.Context, itemID uint) error {
	res := r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", itemID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item %d: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %d not found for deletion: %w", itemID, ErrNotFound)
	}
	return nil
}

func (r *GORMCartRepository) CountItems(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Select("COALESCE(SUM(cart_items.quantity), 0)").
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.user_id = ?", userID).
		Scan(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count cart items for user %s: %w", userID, err)
	}
	return count, nil
}

// DeleteByUserID drains the cart. Called on the order transaction handle so the drain
// commits or rolls back together with the order.
func (r *GORMCartRepository) DeleteByUserID(ctx context.Context, userID string) error {
	db := r.db.WithContext(ctx)
	var cart models.Cart
	if err := db.Select("id").First(&cart, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find cart for user %s: %w", userID, err)
	}
	if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete items of cart %d: %w", cart.ID, err)
	}
	if err := db.Delete(&models.Cart{}, cart.ID).Error; err != nil {
		return fmt.Errorf("failed to delete cart %d: %w", cart.ID, err)
	}
	return nil
}
