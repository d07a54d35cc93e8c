package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart belongs to exactly one user; the unique index on UserID enforces it.
type Cart struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36);not null"`
	Items     []CartItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is one product line in a cart. Adding the same product again increments Quantity.
type CartItem struct {
	ID               uint                `json:"id" gorm:"primaryKey"`
	CartID           uint                `json:"cart_id" gorm:"not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID        uint                `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_items_cart_product"`
	Product          *Product            `json:"product,omitempty"`
	Quantity         int                 `json:"quantity" gorm:"not null"`
	PriceSnapshot    decimal.Decimal     `json:"price_snapshot" gorm:"type:decimal(12,2);not null"`
	DiscountSnapshot decimal.NullDecimal `json:"discount_snapshot" gorm:"type:decimal(12,2)"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}
