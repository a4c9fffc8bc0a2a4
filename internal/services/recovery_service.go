package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xsiva15/Auth/domain"
)

// RecoveryServiceImpl implements domain.RecoveryService
type RecoveryServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	resetTokens domain.LinkTokenService
	mailer      domain.Mailer
}

// NewRecoveryService creates a new password recovery service
func NewRecoveryService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	resetTokens domain.LinkTokenService,
	mailer domain.Mailer,
) domain.RecoveryService {
	return &RecoveryServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		resetTokens: resetTokens,
		mailer:      mailer,
	}
}

// RequestReset implements domain.RecoveryService. The reset mail goes out in
// the background once the user is known to exist; delivery failures are
// retried and logged by the dispatcher, never surfaced here.
func (s *RecoveryServiceImpl) RequestReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	// Delivery failures are logged by the dispatcher.
	go func(email, userID string) {
		_ = s.mailer.SendResetEmail(context.Background(), email, userID)
	}(user.Email, user.ID.String())

	return nil
}

// ResetPassword implements domain.RecoveryService. Unlike email
// confirmation, an expired reset link is a hard failure with no automatic
// resend; the user has to request a new one.
func (s *RecoveryServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.resetTokens.Decode(token)
	if err != nil {
		return domain.ErrTokenInvalid
	}

	if claims.Expired {
		return domain.ErrResetLinkExpired
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, claims.UserID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password reset", "user_id", claims.UserID)
	return nil
}
