package services

import (
	"context"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" validate:"omitempty,url,max=255"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"sort_order" validate:"min=0"`
}

// CategoryOrderInput is one entry of a bulk reorder request.
type CategoryOrderInput struct {
	ID        uint `json:"id" validate:"required"`
	SortOrder int  `json:"sort_order" validate:"min=0"`
}

type CategoryService struct {
	repo repositories.CategoryRepository
}

func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// ListActive returns the storefront category menu.
func (s *CategoryService) ListActive(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// List is the admin listing, inactive categories included.
func (s *CategoryService) List(ctx context.Context, page repositories.Pagination) ([]models.Category, int64, error) {
	categories, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, total, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "category %d", id)
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	category := &models.Category{}
	applyCategory(category, in)
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, repoErr(err, "failed to create category %q", in.Name)
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "category %d", id)
	}
	applyCategory(category, in)
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, repoErr(err, "failed to update category %d", id)
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoErr(err, "failed to delete category %d", id)
	}
	return nil
}

// Reorder assigns sort positions in bulk. Duplicate ids in one request are rejected.
func (s *CategoryService) Reorder(ctx context.Context, in []CategoryOrderInput) error {
	if len(in) == 0 {
		return fmt.Errorf("%w: no categories to reorder", ErrInvalidInput)
	}
	seen := make(map[uint]bool, len(in))
	positions := make([]repositories.CategoryPosition, 0, len(in))
	for _, item := range in {
		if seen[item.ID] {
			return fmt.Errorf("%w: category %d listed twice", ErrInvalidInput, item.ID)
		}
		seen[item.ID] = true
		positions = append(positions, repositories.CategoryPosition{ID: item.ID, SortOrder: item.SortOrder})
	}
	if err := s.repo.Reorder(ctx, positions); err != nil {
		return repoErr(err, "failed to reorder categories")
	}
	return nil
}

func applyCategory(c *models.Category, in CategoryInput) {
	c.Name = in.Name
	c.Description = in.Description
	c.ImageURL = in.ImageURL
	c.IsActive = in.IsActive == nil || *in.IsActive
	c.SortOrder = in.SortOrder
}
