package mocks

import (
	"github.com/xsiva15/Auth/domain"
)

// MockLinkTokenService implements domain.LinkTokenService interface for testing
type MockLinkTokenService struct {
	GenerateLinkFunc func(userID, email string) (string, error)
	DecodeFunc       func(token string) (*domain.LinkClaims, error)
}

// NewMockLinkTokenService creates a new MockLinkTokenService with default behaviors
func NewMockLinkTokenService() *MockLinkTokenService {
	return &MockLinkTokenService{}
}

// GenerateLink builds a signed link for the user
func (m *MockLinkTokenService) GenerateLink(userID, email string) (string, error) {
	if m.GenerateLinkFunc != nil {
		return m.GenerateLinkFunc(userID, email)
	}
	// Default behavior: predictable link
	return "https://example.com/?token=tok_" + userID, nil
}

// Decode decodes a signed link token
func (m *MockLinkTokenService) Decode(token string) (*domain.LinkClaims, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}
