package models

import "time"

type Address struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"type:varchar(36);not null;index"`
	FullName    string    `json:"full_name" gorm:"type:varchar(200);not null"`
	AddressLine string    `json:"address_line" gorm:"type:varchar(255);not null"`
	City        string    `json:"city" gorm:"type:varchar(100);not null"`
	State       string    `json:"state" gorm:"type:varchar(100);not null"`
	ZipCode     string    `json:"zip_code" gorm:"type:varchar(20);not null"`
	Country     string    `json:"country" gorm:"type:varchar(100)"`
	PhoneNumber string    `json:"phone_number" gorm:"type:varchar(32);not null"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
