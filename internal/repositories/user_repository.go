package repositories

import (
	"context"
	"time"

	"storefront/internal/models"
)

// UserFilter narrows the staff user listing. Empty Roles matches every role.
type UserFilter struct {
	Pagination
	Search string
	Roles  []models.Role
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}
