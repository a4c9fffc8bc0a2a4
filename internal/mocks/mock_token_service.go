package mocks

import (
	"github.com/xsiva15/Auth/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GeneratePairFunc         func(userID, email string) (*domain.TokenPair, error)
	ValidateAccessTokenFunc  func(token string) (*domain.SessionClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.SessionClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GeneratePair issues an access/refresh token pair
func (m *MockTokenService) GeneratePair(userID, email string) (*domain.TokenPair, error) {
	if m.GeneratePairFunc != nil {
		return m.GeneratePairFunc(userID, email)
	}
	// Default behavior: predictable pair
	return &domain.TokenPair{
		AccessToken:  "access_" + userID,
		RefreshToken: "refresh_" + userID,
		ExpiresIn:    60,
	}, nil
}

// ValidateAccessToken validates an access token
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.SessionClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}

// ValidateRefreshToken validates a refresh token
func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.SessionClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}
