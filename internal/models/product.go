package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog entry. Price is the only source of truth for order totals.
type Product struct {
	ID            uint                `json:"id" gorm:"primaryKey"`
	Name          string              `json:"name" gorm:"type:varchar(255);not null"`
	Description   string              `json:"description" gorm:"type:text"`
	Price         decimal.Decimal     `json:"price" gorm:"type:decimal(12,2);not null"`
	DiscountPrice decimal.NullDecimal `json:"discount_price" gorm:"type:decimal(12,2)"`
	Stock         int                 `json:"stock" gorm:"not null"`
	SKU           string              `json:"sku" gorm:"uniqueIndex;type:varchar(64);not null"`
	Brand         string              `json:"brand" gorm:"type:varchar(100)"`
	CategoryID    *uint               `json:"category_id,omitempty" gorm:"index"`
	Category      *Category           `json:"category,omitempty"`
	IsActive      bool                `json:"is_active"`
	SoldCount     int                 `json:"sold_count"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	DeletedAt     gorm.DeletedAt      `json:"-" gorm:"index"`
}
