package mocks

import (
	"context"

	"github.com/yunanyuansyah/listPembelian/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc          func(ctx context.Context, nama, email, password, nomor string) (*domain.AuthResult, error)
	LoginFunc             func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	VerifyCredentialsFunc func(ctx context.Context, email, password string) (*domain.User, error)
	RefreshFunc           func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new user
func (m *MockAuthService) Register(ctx context.Context, nama, email, password, nomor string) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, nama, email, password, nomor)
	}
	user := &domain.User{ID: 1, Nama: nama, Email: email, Nomor: nomor, Role: domain.RoleUser}
	return &domain.AuthResult{
		User:   user,
		Tokens: &domain.TokenPair{AccessToken: "access_token", RefreshToken: "refresh_token"},
	}, nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	// Default behavior: reject
	return nil, domain.ErrInvalidCredentials
}

// VerifyCredentials checks a credential pair
func (m *MockAuthService) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	if m.VerifyCredentialsFunc != nil {
		return m.VerifyCredentialsFunc(ctx, email, password)
	}
	// Default behavior: negative result
	return nil, nil
}

// Refresh exchanges a refresh token for a new access token
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}
