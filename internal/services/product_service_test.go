package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) AddSold(ctx context.Context, id uint, qty int) error {
	args := m.Called(ctx, id, qty)
	return args.Error(0)
}

// memoryCache is a map-backed cache.Cache.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
	gets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]string)}
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.entries[key] = string(v)
	default:
		c.entries[key] = fmt.Sprint(v)
	}
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	return c.entries[key], nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *memoryCache) GenerateKey(operation, key string) string {
	return "test:" + operation + ":" + key
}

func validProductInput() services.ProductInput {
	return services.ProductInput{
		Name:  "Product A",
		Price: decimal.RequireFromString("10.00"),
		Stock: 100,
		SKU:   "SKU-A",
	}
}

func TestProductService_ListProducts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil, 0)

	expectedProducts := []models.Product{
		{ID: 1, Name: "Product A", Price: decimal.NewFromInt(10), Stock: 100, IsActive: true},
		{ID: 2, Name: "Product B", Price: decimal.NewFromInt(20), Stock: 50, IsActive: true},
	}
	filter := repositories.ProductFilter{Pagination: repositories.Pagination{Page: 1, Limit: 10}}

	mockRepo.On("List", ctx, filter).Return(expectedProducts, int64(2), nil).Once()

	products, total, err := service.ListProducts(ctx, filter)

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil, 0)

	expectedProduct := &models.Product{ID: 1, Name: "Product A", Price: decimal.NewFromInt(10), Stock: 100, IsActive: true}

	// Test successful retrieval
	mockRepo.On("GetByID", ctx, uint(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", ctx, uint(99)).Return(nil, fmt.Errorf("product with ID 99 not found: %w", repositories.ErrNotFound)).Once()
	product, err = service.GetProductByID(ctx, 99)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)

	// Inactive products are hidden
	mockRepo.On("GetByID", ctx, uint(2)).Return(&models.Product{ID: 2, Name: "Hidden"}, nil).Once()
	_, err = service.GetProductByID(ctx, 2)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByIDUsesCache(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	productCache := newMemoryCache()
	service := services.NewProductService(mockRepo, nil, productCache, time.Minute)

	stored := &models.Product{ID: 7, Name: "Cached", Price: decimal.RequireFromString("19.99"), IsActive: true}
	mockRepo.On("GetByID", ctx, uint(7)).Return(stored, nil).Once()

	first, err := service.GetProductByID(ctx, 7)
	require.NoError(t, err)
	second, err := service.GetProductByID(ctx, 7)
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.True(t, first.Price.Equal(second.Price))
	mockRepo.AssertExpectations(t)

	// Deleting evicts the entry
	mockRepo.On("Delete", ctx, uint(7)).Return(nil).Once()
	require.NoError(t, service.DeleteProduct(ctx, 7))
	assert.Empty(t, productCache.entries)
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil, 0)

	// Test successful creation
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()
	product, err := service.CreateProduct(ctx, validProductInput())
	assert.NoError(t, err)
	assert.True(t, product.IsActive)
	assert.Equal(t, "SKU-A", product.SKU)
	mockRepo.AssertExpectations(t)

	// Test duplicate SKU
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).Return(fmt.Errorf("insert: %w", repositories.ErrDuplicate)).Once()
	_, err = service.CreateProduct(ctx, validProductInput())
	assert.ErrorIs(t, err, services.ErrConflict)
	mockRepo.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).Return(fmt.Errorf("database error")).Once()
	_, err = service.CreateProduct(ctx, validProductInput())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductRejectsBadPrices(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil, 0)

	in := validProductInput()
	in.Price = decimal.Zero
	_, err := service.CreateProduct(ctx, in)
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	in = validProductInput()
	in.DiscountPrice = decimal.NewNullDecimal(decimal.RequireFromString("12.00"))
	_, err = service.CreateProduct(ctx, in)
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo, nil, nil, 0)

	created, err := service.CreateProduct(ctx, validProductInput())
	require.NoError(t, err)

	// Test successful update
	in := validProductInput()
	in.Name = "Product A Updated"
	in.Price = decimal.RequireFromString("12.00")
	inactive := false
	in.IsActive = &inactive
	updated, err := service.UpdateProduct(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Product A Updated", updated.Name)
	assert.False(t, updated.IsActive)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("12.00")))

	// Test update failure (product not found in repo)
	_, err = service.UpdateProduct(ctx, 99, validProductInput())
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil, 0)

	// Test successful deletion
	mockRepo.On("Delete", ctx, uint(1)).Return(nil).Once()
	err := service.DeleteProduct(ctx, 1)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test deletion failure (product not found)
	mockRepo.On("Delete", ctx, uint(99)).Return(fmt.Errorf("product with ID 99 not found for deletion: %w", repositories.ErrNotFound)).Once()
	err = service.DeleteProduct(ctx, 99)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
