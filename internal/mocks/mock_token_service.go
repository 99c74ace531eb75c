package mocks

import (
	"github.com/yunanyuansyah/listPembelian/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	IssuePairFunc          func(user *domain.User) (*domain.TokenPair, error)
	VerifyAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	VerifyRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
	RefreshAccessFunc      func(refreshToken string, user *domain.User) (string, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// IssuePair issues an access/refresh token pair
func (m *MockTokenService) IssuePair(user *domain.User) (*domain.TokenPair, error) {
	if m.IssuePairFunc != nil {
		return m.IssuePairFunc(user)
	}
	// Default behavior: predictable fake tokens
	return &domain.TokenPair{
		AccessToken:  "access_token",
		RefreshToken: "refresh_token",
	}, nil
}

// VerifyAccessToken verifies an access token
func (m *MockTokenService) VerifyAccessToken(token string) (*domain.TokenClaims, error) {
	if m.VerifyAccessTokenFunc != nil {
		return m.VerifyAccessTokenFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}

// VerifyRefreshToken verifies a refresh token
func (m *MockTokenService) VerifyRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.VerifyRefreshTokenFunc != nil {
		return m.VerifyRefreshTokenFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}

// RefreshAccess mints a new access token from a refresh token
func (m *MockTokenService) RefreshAccess(refreshToken string, user *domain.User) (string, error) {
	if m.RefreshAccessFunc != nil {
		return m.RefreshAccessFunc(refreshToken, user)
	}
	// Default behavior: predictable fake token
	return "new_access_token", nil
}
