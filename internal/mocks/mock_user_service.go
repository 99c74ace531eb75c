package mocks

import (
	"context"

	"github.com/yunanyuansyah/listPembelian/domain"
)

// MockUserService implements domain.UserService interface for testing
type MockUserService struct {
	ListFunc       func(ctx context.Context) ([]domain.User, error)
	GetFunc        func(ctx context.Context, id uint) (*domain.User, error)
	CreateFunc     func(ctx context.Context, nama, email, password, nomor, role string) (*domain.User, error)
	UpdateFunc     func(ctx context.Context, id uint, fields domain.UserUpdate) (*domain.User, error)
	ChangeRoleFunc func(ctx context.Context, actorID, id uint, role string) (*domain.User, error)
	DeleteFunc     func(ctx context.Context, actorID, id uint) error
}

// NewMockUserService creates a new MockUserService with default behaviors
func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

// List lists all users
func (m *MockUserService) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.User{}, nil
}

// Get loads a single user
func (m *MockUserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

// Create creates a user with an explicit role
func (m *MockUserService) Create(ctx context.Context, nama, email, password, nomor, role string) (*domain.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, nama, email, password, nomor, role)
	}
	return &domain.User{ID: 1, Nama: nama, Email: email, Nomor: nomor, Role: role}, nil
}

// Update applies a partial profile update
func (m *MockUserService) Update(ctx context.Context, id uint, fields domain.UserUpdate) (*domain.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, fields)
	}
	return nil, domain.ErrUserNotFound
}

// ChangeRole changes a user's role
func (m *MockUserService) ChangeRole(ctx context.Context, actorID, id uint, role string) (*domain.User, error) {
	if m.ChangeRoleFunc != nil {
		return m.ChangeRoleFunc(ctx, actorID, id, role)
	}
	return nil, domain.ErrUserNotFound
}

// Delete removes a user
func (m *MockUserService) Delete(ctx context.Context, actorID, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actorID, id)
	}
	return nil
}
