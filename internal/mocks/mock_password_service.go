package mocks

// MockPasswordService implements domain.PasswordService interface for testing
type MockPasswordService struct {
	HashFunc        func(password string) (string, error)
	VerifyFunc      func(hashedPassword, password string) bool
	NeedsRehashFunc func(hashedPassword string) bool
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash hashes a password
func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	// Default behavior: predictable hash
	return "hashed_" + password, nil
}

// Verify verifies a password against a hash
func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	// Default behavior: matches the predictable hash
	return hashedPassword == "hashed_"+password
}

// NeedsRehash reports whether the hash should be regenerated
func (m *MockPasswordService) NeedsRehash(hashedPassword string) bool {
	if m.NeedsRehashFunc != nil {
		return m.NeedsRehashFunc(hashedPassword)
	}
	// Default behavior: up to date
	return false
}
