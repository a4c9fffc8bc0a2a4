package domain

import "context"

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Activate(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error
}

// LoginService defines login business logic
type LoginService interface {
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

// RegistrationService defines registration business logic
type RegistrationService interface {
	Register(ctx context.Context, email, phone, password string) (*TokenPair, error)
	ConfirmEmail(ctx context.Context, token string) (string, error)
}

// RecoveryService defines password recovery business logic
type RecoveryService interface {
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
	NeedsRehash(hashedPassword string) bool
}

// TokenService defines session token operations
type TokenService interface {
	GeneratePair(userID, email string) (*TokenPair, error)
	ValidateAccessToken(token string) (*SessionClaims, error)
	ValidateRefreshToken(token string) (*SessionClaims, error)
}

// LinkTokenService defines signed-link token operations for the
// email-confirmation and password-reset flows. Decode reports expiry in the
// returned claims instead of failing, so a stale link can be told apart from
// a tampered one.
type LinkTokenService interface {
	GenerateLink(userID, email string) (string, error)
	Decode(token string) (*LinkClaims, error)
}

// Mailer defines the outbound notification contract
type Mailer interface {
	SendConfirmationEmail(ctx context.Context, email, userID string) error
	SendResetEmail(ctx context.Context, email, userID string) error
}

// EmailSender defines the raw email transport
type EmailSender interface {
	SendEmail(to, subject, body string) error
}
