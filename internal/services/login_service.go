package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xsiva15/Auth/domain"
)

// LoginServiceImpl implements domain.LoginService
type LoginServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
}

// NewLoginService creates a new login service
func NewLoginService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
) domain.LoginService {
	return &LoginServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Login implements domain.LoginService. An unknown email and a wrong
// password are distinct outcomes: the first maps to not-found, the second
// to forbidden.
func (s *LoginServiceImpl) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	// Opportunistic credential upgrade when the configured cost changed.
	// Best effort: a failed upgrade must not fail the login.
	if s.passwordSvc.NeedsRehash(user.PasswordHash) {
		if newHash, hashErr := s.passwordSvc.Hash(password); hashErr == nil {
			if updErr := s.userRepo.UpdatePassword(ctx, user.ID.String(), newHash); updErr != nil {
				slog.Warn("password rehash upgrade failed", "user_id", user.ID, "error", updErr)
			}
		}
	}

	pair, err := s.tokenSvc.GeneratePair(user.ID.String(), user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return pair, nil
}

// Refresh implements domain.LoginService. Sessions are stateless, so the
// refresh token is the only proof of the session: a valid, fresh refresh
// token for a still-existing user yields a brand new pair.
func (s *LoginServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.ID.String() != claims.UserID {
		return nil, domain.ErrTokenInvalid
	}

	pair, err := s.tokenSvc.GeneratePair(user.ID.String(), user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return pair, nil
}
