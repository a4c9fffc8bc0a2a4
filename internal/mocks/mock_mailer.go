package mocks

import (
	"context"
	"sync"
)

// MockMailer implements domain.Mailer interface for testing. Sent requests
// are recorded so tests can wait for background dispatch to land.
type MockMailer struct {
	SendConfirmationEmailFunc func(ctx context.Context, email, userID string) error
	SendResetEmailFunc        func(ctx context.Context, email, userID string) error

	mu            sync.Mutex
	confirmations []string
	resets        []string
	sent          chan struct{}
}

// NewMockMailer creates a new MockMailer with default behaviors
func NewMockMailer() *MockMailer {
	return &MockMailer{sent: make(chan struct{}, 16)}
}

// SendConfirmationEmail records a confirmation mail request
func (m *MockMailer) SendConfirmationEmail(ctx context.Context, email, userID string) error {
	if m.SendConfirmationEmailFunc != nil {
		return m.SendConfirmationEmailFunc(ctx, email, userID)
	}
	m.mu.Lock()
	m.confirmations = append(m.confirmations, email)
	m.mu.Unlock()
	m.sent <- struct{}{}
	return nil
}

// SendResetEmail records a reset mail request
func (m *MockMailer) SendResetEmail(ctx context.Context, email, userID string) error {
	if m.SendResetEmailFunc != nil {
		return m.SendResetEmailFunc(ctx, email, userID)
	}
	m.mu.Lock()
	m.resets = append(m.resets, email)
	m.mu.Unlock()
	m.sent <- struct{}{}
	return nil
}

// Sent exposes the dispatch signal channel; one receive per recorded mail
func (m *MockMailer) Sent() <-chan struct{} {
	return m.sent
}

// Confirmations returns the recipients of recorded confirmation mails
func (m *MockMailer) Confirmations() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.confirmations...)
}

// Resets returns the recipients of recorded reset mails
func (m *MockMailer) Resets() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.resets...)
}
