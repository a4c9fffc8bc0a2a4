package mocks

import "sync"

// MockEmailSender implements domain.EmailSender interface for testing
type MockEmailSender struct {
	SendEmailFunc func(to, subject, body string) error

	mu    sync.Mutex
	calls int
}

// NewMockEmailSender creates a new MockEmailSender with default behaviors
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

// SendEmail sends an email
func (m *MockEmailSender) SendEmail(to, subject, body string) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	// Default behavior: success
	return nil
}

// Calls returns the number of send attempts observed
func (m *MockEmailSender) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
