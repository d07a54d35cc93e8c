package repositories

import (
	"context"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
)

type GORMCategoryRepository struct {
	db *gorm.DB
}

func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// ListActive returns every active category in display order.
func (r *GORMCategoryRepository) ListActive(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("sort_order ASC, id ASC").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *GORMCategoryRepository) List(ctx context.Context, page Pagination) ([]models.Category, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Category{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	page = page.Normalize()
	var categories []models.Category
	if err := q.Order("sort_order ASC, id ASC").Offset(page.Offset()).Limit(page.Limit).Find(&categories).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, total, nil
}

func (r *GORMCategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get category by ID %d: %w", id, translate(err))
	}
	return &category, nil
}

func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", translate(err))
	}
	return nil
}

func (r *GORMCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	res := r.db.WithContext(ctx).Model(category).Select("*").Omit("ID", "CreatedAt", "DeletedAt").Updates(category)
	if res.Error != nil {
		return fmt.Errorf("failed to update category: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %d not found for update: %w", category.ID, ErrNotFound)
	}
	return nil
}

// Delete soft-deletes a category. Products keep their category_id.
func (r *GORMCategoryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// Reorder applies all positions in one transaction; an unknown id aborts the whole batch.
func (r *GORMCategoryRepository) Reorder(ctx context.Context, positions []CategoryPosition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range positions {
			res := tx.Model(&models.Category{}).Where("id = ?", p.ID).Update("sort_order", p.SortOrder)
			if res.Error != nil {
				return fmt.Errorf("failed to reorder category %d: %w", p.ID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("category with ID %d not found for reorder: %w", p.ID, ErrNotFound)
			}
		}
		return nil
	})
}
