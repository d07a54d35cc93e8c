package models

import "time"

// PaymentMethod stores a card reference. Only the last four digits are kept.
type PaymentMethod struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         string    `json:"user_id" gorm:"type:varchar(36);not null;index"`
	CardholderName string    `json:"cardholder_name" gorm:"type:varchar(200);not null"`
	CardLast4      string    `json:"card_last4" gorm:"type:varchar(4);not null"`
	ExpiryDate     string    `json:"expiry_date" gorm:"type:varchar(5);not null"`
	IsDefault      bool      `json:"is_default"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
