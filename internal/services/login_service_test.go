package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/xsiva15/Auth/domain"
	"github.com/xsiva15/Auth/internal/mocks"
)

func testUser(t *testing.T) *domain.User {
	t.Helper()
	return &domain.User{
		ID:           uuid.MustParse("8f14e45f-ceea-4672-a045-2b71d8f11111"),
		Email:        "test@example.com",
		Phone:        "71234567890",
		PasswordHash: "hashed_password123",
		IsActive:     true,
	}
}

func TestLoginService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockPasswordService, *mocks.MockTokenService)
		expectedError error
		validatePair  func(t *testing.T, pair *domain.TokenPair)
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService, tokenSvc *mocks.MockTokenService) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return testUser(t), nil
				}
			},
			expectedError: nil,
			validatePair: func(t *testing.T, pair *domain.TokenPair) {
				if pair == nil {
					t.Fatal("pair is nil")
				}
				if pair.AccessToken == "" || pair.RefreshToken == "" {
					t.Error("expected both tokens to be issued")
				}
			},
		},
		{
			name:     "unknown email",
			email:    "missing@example.com",
			password: "password123",
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService, tokenSvc *mocks.MockTokenService) {
				// Default mock behavior: not found
			},
			expectedError: domain.ErrUserNotFound,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrong",
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService, tokenSvc *mocks.MockTokenService) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return testUser(t), nil
				}
			},
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:     "repository failure propagates",
			email:    "test@example.com",
			password: "password123",
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService, tokenSvc *mocks.MockTokenService) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return nil, errors.New("connection lost")
				}
			},
			expectedError: errors.New("failed to look up user: connection lost"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			passwordSvc := mocks.NewMockPasswordService()
			tokenSvc := mocks.NewMockTokenService()
			tt.setupMocks(userRepo, passwordSvc, tokenSvc)

			svc := NewLoginService(userRepo, passwordSvc, tokenSvc)
			pair, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.expectedError)
				}
				if !errors.Is(err, tt.expectedError) && err.Error() != tt.expectedError.Error() {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validatePair != nil {
				tt.validatePair(t, pair)
			}
		})
	}
}

func TestLoginService_LoginRehashUpgrade(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	passwordSvc := mocks.NewMockPasswordService()
	tokenSvc := mocks.NewMockTokenService()

	userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return testUser(t), nil
	}
	passwordSvc.NeedsRehashFunc = func(hashedPassword string) bool { return true }

	var updatedHash string
	userRepo.UpdatePasswordFunc = func(ctx context.Context, userID, passwordHash string) error {
		updatedHash = passwordHash
		return nil
	}

	svc := NewLoginService(userRepo, passwordSvc, tokenSvc)
	if _, err := svc.Login(context.Background(), "test@example.com", "password123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updatedHash != "hashed_password123" {
		t.Errorf("expected rehash upgrade to store new hash, got %q", updatedHash)
	}
}

func TestLoginService_LoginRehashFailureIsNotFatal(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	passwordSvc := mocks.NewMockPasswordService()
	tokenSvc := mocks.NewMockTokenService()

	userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return testUser(t), nil
	}
	passwordSvc.NeedsRehashFunc = func(hashedPassword string) bool { return true }
	userRepo.UpdatePasswordFunc = func(ctx context.Context, userID, passwordHash string) error {
		return errors.New("write failed")
	}

	svc := NewLoginService(userRepo, passwordSvc, tokenSvc)
	pair, err := svc.Login(context.Background(), "test@example.com", "password123")
	if err != nil {
		t.Fatalf("login should survive a failed rehash upgrade, got %v", err)
	}
	if pair == nil {
		t.Fatal("expected token pair")
	}
}

func TestLoginService_Refresh(t *testing.T) {
	user := &domain.User{
		ID:    uuid.MustParse("8f14e45f-ceea-4672-a045-2b71d8f11111"),
		Email: "test@example.com",
	}

	tests := []struct {
		name          string
		token         string
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockTokenService)
		expectedError error
	}{
		{
			name:  "successful refresh",
			token: "refresh-token",
			setupMocks: func(userRepo *mocks.MockUserRepository, tokenSvc *mocks.MockTokenService) {
				tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.SessionClaims, error) {
					return &domain.SessionClaims{
						UserID:    user.ID.String(),
						Email:     user.Email,
						TokenType: domain.TokenTypeRefresh,
					}, nil
				}
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return user, nil
				}
			},
		},
		{
			name:          "invalid token",
			token:         "garbage",
			setupMocks:    func(userRepo *mocks.MockUserRepository, tokenSvc *mocks.MockTokenService) {},
			expectedError: domain.ErrTokenInvalid,
		},
		{
			name:  "expired token",
			token: "stale",
			setupMocks: func(userRepo *mocks.MockUserRepository, tokenSvc *mocks.MockTokenService) {
				tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.SessionClaims, error) {
					return nil, domain.ErrTokenExpired
				}
			},
			expectedError: domain.ErrTokenExpired,
		},
		{
			name:  "user gone",
			token: "refresh-token",
			setupMocks: func(userRepo *mocks.MockUserRepository, tokenSvc *mocks.MockTokenService) {
				tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.SessionClaims, error) {
					return &domain.SessionClaims{UserID: user.ID.String(), Email: user.Email}, nil
				}
			},
			expectedError: domain.ErrUserNotFound,
		},
		{
			name:  "subject mismatch",
			token: "refresh-token",
			setupMocks: func(userRepo *mocks.MockUserRepository, tokenSvc *mocks.MockTokenService) {
				tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.SessionClaims, error) {
					return &domain.SessionClaims{UserID: "someone-else", Email: user.Email}, nil
				}
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return user, nil
				}
			},
			expectedError: domain.ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			tokenSvc := mocks.NewMockTokenService()
			tt.setupMocks(userRepo, tokenSvc)

			svc := NewLoginService(userRepo, mocks.NewMockPasswordService(), tokenSvc)
			pair, err := svc.Refresh(context.Background(), tt.token)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pair == nil || pair.AccessToken == "" {
				t.Fatal("expected a fresh token pair")
			}
		})
	}
}
