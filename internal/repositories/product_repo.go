package repositories

import (
	"context"

	"storefront/internal/models"
)

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Pagination
	Search          string
	CategoryID      *uint
	IncludeInactive bool
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	// GetByIDs returns the products that exist among ids; missing ids are simply absent.
	GetByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	// AddSold adds qty to the product's sold counter.
	AddSold(ctx context.Context, id uint, qty int) error
}
