package repositories

import (
	"context"

	"storefront/internal/models"
)

type PaymentMethodRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.PaymentMethod, error)
	GetByID(ctx context.Context, id uint) (*models.PaymentMethod, error)
	// Create and Update keep at most one default payment method per user.
	Create(ctx context.Context, method *models.PaymentMethod) error
	Update(ctx context.Context, method *models.PaymentMethod) error
	Delete(ctx context.Context, id uint) error
}
