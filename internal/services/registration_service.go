package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xsiva15/Auth/domain"
)

// RegistrationServiceImpl implements domain.RegistrationService
type RegistrationServiceImpl struct {
	userRepo      domain.UserRepository
	passwordSvc   domain.PasswordService
	tokenSvc      domain.TokenService
	confirmTokens domain.LinkTokenService
	mailer        domain.Mailer

	confirmedRedirectURL string
	expiredRedirectURL   string
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	confirmTokens domain.LinkTokenService,
	mailer domain.Mailer,
	confirmedRedirectURL string,
	expiredRedirectURL string,
) domain.RegistrationService {
	return &RegistrationServiceImpl{
		userRepo:             userRepo,
		passwordSvc:          passwordSvc,
		tokenSvc:             tokenSvc,
		confirmTokens:        confirmTokens,
		mailer:               mailer,
		confirmedRedirectURL: confirmedRedirectURL,
		expiredRedirectURL:   expiredRedirectURL,
	}
}

// Register implements domain.RegistrationService. A session pair is issued
// immediately: email confirmation only flips is_active later. The
// confirmation mail goes out in the background and its failure never fails
// the registration.
func (s *RegistrationServiceImpl) Register(ctx context.Context, email, phone, password string) (*domain.TokenPair, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Phone:        phone,
		PasswordHash: hashedPassword,
	}

	// The unique index on email is the backstop here: a concurrent
	// registration that slipped past ExistsByEmail loses on Create.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := s.tokenSvc.GeneratePair(user.ID.String(), user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	// Delivery failures are logged by the dispatcher; registration itself
	// never fails on them.
	go func(email, userID string) {
		_ = s.mailer.SendConfirmationEmail(context.Background(), email, userID)
	}(user.Email, user.ID.String())

	return pair, nil
}

// ConfirmEmail implements domain.RegistrationService. A tampered token is
// rejected outright. An authentic but stale token gets a fresh mail and an
// "expired" landing page instead of an error. An authentic fresh token
// activates the account only when the email still belongs to the user id it
// was issued for; on a mismatch the redirect happens without activation.
func (s *RegistrationServiceImpl) ConfirmEmail(ctx context.Context, token string) (string, error) {
	claims, err := s.confirmTokens.Decode(token)
	if err != nil {
		return "", domain.ErrTokenInvalid
	}

	if claims.Expired {
		go func(email, userID string) {
			_ = s.mailer.SendConfirmationEmail(context.Background(), email, userID)
		}(claims.Email, claims.UserID)
		return s.expiredRedirectURL, nil
	}

	ok, err := s.verifyEmailAffiliation(ctx, claims.Email, claims.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to verify email affiliation: %w", err)
	}
	if !ok {
		return s.confirmedRedirectURL, nil
	}

	if err := s.userRepo.Activate(ctx, claims.Email); err != nil {
		return "", fmt.Errorf("failed to activate user: %w", err)
	}

	slog.Info("email confirmed", "email", claims.Email, "user_id", claims.UserID)
	return s.confirmedRedirectURL, nil
}

// verifyEmailAffiliation reports whether the email still maps to the given
// user id. One email means exactly one live user.
func (s *RegistrationServiceImpl) verifyEmailAffiliation(ctx context.Context, email, userID string) (bool, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.ID.String() == userID, nil
}
