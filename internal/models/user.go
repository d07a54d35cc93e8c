package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the authorization role carried by a user and its access token.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
	RoleMember     Role = "member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleMember:
		return true
	}
	return false
}

// IsStaff reports whether the role may use admin endpoints.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSupervisor
}

// User represents a member or staff account.
type User struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FirstName   string         `json:"first_name" gorm:"type:varchar(100)"`
	LastName    string         `json:"last_name" gorm:"type:varchar(100)"`
	Email       string         `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	PhoneNumber string         `json:"phone_number" gorm:"type:varchar(32)"`
	Password    string         `json:"-" gorm:"type:varchar(255);not null"`
	Role        Role           `json:"role" gorm:"type:varchar(20);not null;index"`
	IsActive    bool           `json:"is_active"`
	LastLogin   *time.Time     `json:"last_login,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
