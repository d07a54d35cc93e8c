package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped: {OrderStatusDelivered, OrderStatusCancelled},
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusDelivered
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is append-only after creation: only Status and TrackingNumber change later.
type Order struct {
	ID                   uint            `json:"id" gorm:"primaryKey"`
	UserID               string          `json:"user_id" gorm:"type:varchar(36);not null;index"`
	OrderNumber          string          `json:"order_number" gorm:"uniqueIndex;type:varchar(32);not null"`
	Subtotal             decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2);not null"`
	DiscountValue        decimal.Decimal `json:"discount_value" gorm:"type:decimal(12,2);not null"`
	CouponCode           *string         `json:"coupon_code" gorm:"type:varchar(64)"`
	ShippingCost         decimal.Decimal `json:"shipping_cost" gorm:"type:decimal(12,2);not null"`
	TotalPrice           decimal.Decimal `json:"total_price" gorm:"type:decimal(12,2);not null"`
	PaymentMethod        string          `json:"payment_method" gorm:"type:varchar(64);not null"`
	Status               OrderStatus     `json:"order_status" gorm:"type:varchar(20);not null;index"`
	ShippingFullName     string          `json:"shipping_full_name" gorm:"type:varchar(200);not null"`
	ShippingAddressLine1 string          `json:"shipping_address_line1" gorm:"type:varchar(255);not null"`
	ShippingAddressLine2 *string         `json:"shipping_address_line2" gorm:"type:varchar(255)"`
	ShippingCity         string          `json:"shipping_city" gorm:"type:varchar(100);not null"`
	ShippingZip          string          `json:"shipping_zip" gorm:"type:varchar(20);not null"`
	ShippingCountry      string          `json:"shipping_country" gorm:"type:varchar(100);not null"`
	ShippingPhone        string          `json:"shipping_phone" gorm:"type:varchar(32);not null"`
	ShippingState        string          `json:"shipping_state" gorm:"type:varchar(100);not null"`
	TrackingNumber       *string         `json:"tracking_number" gorm:"type:varchar(100)"`
	Items                []OrderItem     `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// OrderItem is an immutable record of a product line at the moment the order was placed.
type OrderItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderID     uint            `json:"order_id" gorm:"not null;index"`
	ProductID   uint            `json:"product_id" gorm:"not null;index"`
	ProductName string          `json:"product_name" gorm:"type:varchar(255);not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderSequence holds the per-day order number counter.
type OrderSequence struct {
	Day     string `gorm:"primaryKey;type:varchar(8)"`
	Counter int64  `gorm:"not null"`
}
