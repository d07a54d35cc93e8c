package repositories

import (
	"context"

	"storefront/internal/models"
)

// CategoryPosition assigns a sort position to a category.
type CategoryPosition struct {
	ID        uint
	SortOrder int
}

type CategoryRepository interface {
	ListActive(ctx context.Context) ([]models.Category, error)
	List(ctx context.Context, page Pagination) ([]models.Category, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
	Reorder(ctx context.Context, positions []CategoryPosition) error
}
