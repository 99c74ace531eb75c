package mocks

import (
	"context"

	"github.com/yunanyuansyah/listPembelian/domain"
)

// MockProductRepository implements domain.ProductRepository interface for testing
type MockProductRepository struct {
	CreateFunc   func(ctx context.Context, product *domain.Product) error
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Product, error)
	FindAllFunc  func(ctx context.Context) ([]domain.Product, error)
	SearchFunc   func(ctx context.Context, query string) ([]domain.Product, error)
	UpdateFunc   func(ctx context.Context, product *domain.Product) error
	DeleteFunc   func(ctx context.Context, id uint) error
}

// NewMockProductRepository creates a new MockProductRepository with default behaviors
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{}
}

// Create creates a new product
func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, product)
	}
	// Default behavior: assign an id and succeed
	if product.ID == 0 {
		product.ID = 1
	}
	return nil
}

// FindByID finds a product by ID
func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrProductNotFound
}

// FindAll lists all products
func (m *MockProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	// Default behavior: empty list
	return []domain.Product{}, nil
}

// Search finds products matching a query
func (m *MockProductRepository) Search(ctx context.Context, query string) ([]domain.Product, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	// Default behavior: empty list
	return []domain.Product{}, nil
}

// Update updates an existing product
func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, product)
	}
	// Default behavior: success
	return nil
}

// Delete removes a product
func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	// Default behavior: success
	return nil
}
