package mocks

import (
	"context"

	"github.com/xsiva15/Auth/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *domain.User) error
	FindByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailFunc  func(ctx context.Context, email string) (bool, error)
	ActivateFunc       func(ctx context.Context, email string) error
	UpdatePasswordFunc func(ctx context.Context, userID string, passwordHash string) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// ExistsByEmail reports whether a user with the email exists
func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	// Default behavior: absent
	return false, nil
}

// Activate marks the user's email as confirmed
func (m *MockUserRepository) Activate(ctx context.Context, email string) error {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// UpdatePassword replaces the user's password hash
func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, userID, passwordHash)
	}
	// Default behavior: success
	return nil
}
