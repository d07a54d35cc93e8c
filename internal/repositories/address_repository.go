package repositories

import (
	"context"

	"storefront/internal/models"
)

type AddressRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Address, error)
	GetByID(ctx context.Context, id uint) (*models.Address, error)
	Create(ctx context.Context, address *models.Address) error
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id uint) error
	// SetDefault marks id as the user's only default address.
	SetDefault(ctx context.Context, userID string, id uint) error
}
