package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an identity record in the system
type User struct {
	ID           uuid.UUID
	Email        string
	Phone        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthRequest represents authentication credentials
type AuthRequest struct {
	Email    string
	Password string
}

// TokenPair represents the session credentials issued at login/registration
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// LinkClaims represents the decoded payload of a confirmation or reset token.
// Expired is reported as data rather than as an error so callers can treat
// a stale-but-authentic link differently from a forged one.
type LinkClaims struct {
	UserID  string
	Email   string
	Expired bool
}

// SessionClaims represents the decoded payload of a session token
type SessionClaims struct {
	UserID    string
	Email     string
	TokenType string
	IssuedAt  int64
	ExpiresAt int64
}

// Session token type discriminators
const (
	TokenTypeAccess  = "Access"
	TokenTypeRefresh = "Refresh"
)
