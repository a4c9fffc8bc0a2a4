package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xsiva15/Auth/domain"
	"github.com/xsiva15/Auth/internal/mocks"
)

func TestRecoveryService_RequestReset(t *testing.T) {
	t.Run("unknown email fails", func(t *testing.T) {
		mailer := mocks.NewMockMailer()
		svc := NewRecoveryService(mocks.NewMockUserRepository(), mocks.NewMockPasswordService(), mocks.NewMockLinkTokenService(), mailer)

		err := svc.RequestReset(context.Background(), "missing@x.com")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
		if len(mailer.Resets()) != 0 {
			t.Error("no mail should be dispatched for an unknown email")
		}
	})

	t.Run("existing user gets a reset mail", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		user := testUser(t)
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		}
		mailer := mocks.NewMockMailer()

		svc := NewRecoveryService(userRepo, mocks.NewMockPasswordService(), mocks.NewMockLinkTokenService(), mailer)
		if err := svc.RequestReset(context.Background(), user.Email); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		waitForMail(t, mailer)
		got := mailer.Resets()
		if len(got) != 1 || got[0] != user.Email {
			t.Errorf("expected one reset mail to %s, got %v", user.Email, got)
		}
	})

	t.Run("mail failure is silent at the service level", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		user := testUser(t)
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		}
		mailer := mocks.NewMockMailer()
		logs := captureLogs(t)
		delivered := make(chan struct{}, 1)
		mailer.SendResetEmailFunc = func(ctx context.Context, email, userID string) error {
			delivered <- struct{}{}
			return errors.New("smtp down")
		}

		svc := NewRecoveryService(userRepo, mocks.NewMockPasswordService(), mocks.NewMockLinkTokenService(), mailer)
		if err := svc.RequestReset(context.Background(), user.Email); err != nil {
			t.Fatalf("a mail failure must not surface, got %v", err)
		}

		select {
		case <-delivered:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for mail attempt")
		}
		// The dispatcher owns delivery failure logging.
		if logs.Len() != 0 {
			t.Errorf("expected no service-level log for a mail failure, got %q", logs.String())
		}
	})
}

func TestRecoveryService_ResetPassword(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockLinkTokenService)
		expectedError error
		expectUpdate  bool
	}{
		{
			name:  "successful reset",
			token: "fresh",
			setupMocks: func(userRepo *mocks.MockUserRepository, resetTokens *mocks.MockLinkTokenService) {
				resetTokens.DecodeFunc = func(token string) (*domain.LinkClaims, error) {
					return &domain.LinkClaims{UserID: "user-1", Email: "user@example.com"}, nil
				}
			},
			expectUpdate: true,
		},
		{
			name:          "invalid token",
			token:         "forged",
			setupMocks:    func(userRepo *mocks.MockUserRepository, resetTokens *mocks.MockLinkTokenService) {},
			expectedError: domain.ErrTokenInvalid,
		},
		{
			name:  "expired token is a hard failure",
			token: "stale",
			setupMocks: func(userRepo *mocks.MockUserRepository, resetTokens *mocks.MockLinkTokenService) {
				resetTokens.DecodeFunc = func(token string) (*domain.LinkClaims, error) {
					return &domain.LinkClaims{UserID: "user-1", Email: "user@example.com", Expired: true}, nil
				}
			},
			expectedError: domain.ErrResetLinkExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			resetTokens := mocks.NewMockLinkTokenService()
			tt.setupMocks(userRepo, resetTokens)

			var gotUserID, gotHash string
			userRepo.UpdatePasswordFunc = func(ctx context.Context, userID, passwordHash string) error {
				gotUserID, gotHash = userID, passwordHash
				return nil
			}

			svc := NewRecoveryService(userRepo, mocks.NewMockPasswordService(), resetTokens, mocks.NewMockMailer())
			err := svc.ResetPassword(context.Background(), tt.token, "NewPass1!")

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				if gotHash != "" {
					t.Error("password must stay unchanged on failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.expectUpdate {
				return
			}
			if gotUserID != "user-1" {
				t.Errorf("expected update for user-1, got %q", gotUserID)
			}
			if gotHash != "hashed_NewPass1!" {
				t.Errorf("expected new password to be hashed, got %q", gotHash)
			}
		})
	}
}
