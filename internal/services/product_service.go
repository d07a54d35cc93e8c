package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"storefront/internal/cache"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
)

const productCacheOperation = "product"

// ProductInput is the admin create/replace payload for a product.
type ProductInput struct {
	Name          string              `json:"name" validate:"required,max=255"`
	Description   string              `json:"description"`
	Price         decimal.Decimal     `json:"price"`
	DiscountPrice decimal.NullDecimal `json:"discount_price"`
	Stock         int                 `json:"stock" validate:"min=0"`
	SKU           string              `json:"sku" validate:"required,max=64"`
	Brand         string              `json:"brand" validate:"omitempty,max=100"`
	CategoryID    *uint               `json:"category_id"`
	IsActive      *bool               `json:"is_active"`
}

func (in ProductInput) validate() error {
	if !in.Price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than zero", ErrInvalidInput)
	}
	if in.DiscountPrice.Valid {
		if in.DiscountPrice.Decimal.IsNegative() || in.DiscountPrice.Decimal.GreaterThanOrEqual(in.Price) {
			return fmt.Errorf("%w: discount price must be between zero and the price", ErrInvalidInput)
		}
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}
	return nil
}

func (in ProductInput) apply(p *models.Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price.Round(2)
	p.DiscountPrice = in.DiscountPrice
	if p.DiscountPrice.Valid {
		p.DiscountPrice.Decimal = p.DiscountPrice.Decimal.Round(2)
	}
	p.Stock = in.Stock
	p.SKU = in.SKU
	p.Brand = in.Brand
	p.CategoryID = in.CategoryID
	p.IsActive = in.IsActive == nil || *in.IsActive
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo       repositories.ProductRepository
	categories repositories.CategoryRepository
	cache      cache.Cache
	cacheTTL   time.Duration
}

// NewProductService creates a new ProductService. productCache may be nil to disable caching.
func NewProductService(repo repositories.ProductRepository, categories repositories.CategoryRepository, productCache cache.Cache, cacheTTL time.Duration) *ProductService {
	return &ProductService{
		repo:       repo,
		categories: categories,
		cache:      productCache,
		cacheTTL:   cacheTTL,
	}
}

// ListProducts returns a page of products. Public callers only see active products.
func (s *ProductService) ListProducts(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, int64, error) {
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// GetProductByID retrieves a single active product, through the cache when configured.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	if product := s.cached(ctx, id); product != nil {
		return product, nil
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "product %d", id)
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	s.store(ctx, product)
	return product, nil
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	product := &models.Product{}
	in.apply(product)
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, repoErr(err, "failed to create product %s", in.SKU)
	}
	return product, nil
}

// UpdateProduct replaces the editable fields of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "product %d", id)
	}
	in.apply(product)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, repoErr(err, "failed to update product %d", id)
	}
	s.evict(ctx, id)
	return product, nil
}

// DeleteProduct soft-deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoErr(err, "failed to delete product %d", id)
	}
	s.evict(ctx, id)
	return nil
}

func (s *ProductService) checkCategory(ctx context.Context, id *uint) error {
	if id == nil || s.categories == nil {
		return nil
	}
	if _, err := s.categories.GetByID(ctx, *id); err != nil {
		return repoErr(err, "category %d", *id)
	}
	return nil
}

func (s *ProductService) cacheKey(id uint) string {
	return s.cache.GenerateKey(productCacheOperation, strconv.FormatUint(uint64(id), 10))
}

func (s *ProductService) cached(ctx context.Context, id uint) *models.Product {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cacheKey(id))
	if err != nil {
		slog.Warn("product cache read failed", "product_id", id, "error", err)
		return nil
	}
	if raw == "" {
		return nil
	}
	var product models.Product
	if err := json.Unmarshal([]byte(raw), &product); err != nil {
		slog.Warn("product cache entry is corrupt", "product_id", id, "error", err)
		return nil
	}
	return &product
}

func (s *ProductService) store(ctx context.Context, product *models.Product) {
	if s.cache == nil {
		return
	}
	body, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(product.ID), body, s.cacheTTL); err != nil {
		slog.Warn("product cache write failed", "product_id", product.ID, "error", err)
	}
}

func (s *ProductService) evict(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.cacheKey(id)); err != nil {
		slog.Warn("product cache eviction failed", "product_id", id, "error", err)
	}
}
