package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xsiva15/Auth/domain"
)

// AuthHandlers translates HTTP requests into core operations and business
// outcomes back into status codes. This is the only place where that
// translation happens.
type AuthHandlers struct {
	loginSvc        domain.LoginService
	registrationSvc domain.RegistrationService
	recoverySvc     domain.RecoveryService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(
	loginSvc domain.LoginService,
	registrationSvc domain.RegistrationService,
	recoverySvc domain.RecoveryService,
) *AuthHandlers {
	return &AuthHandlers{
		loginSvc:        loginSvc,
		registrationSvc: registrationSvc,
		recoverySvc:     recoverySvc,
	}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,phone"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RecoveryRequest represents a password reset mail request
type RecoveryRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// NewPasswordRequest represents the final password reset step
type NewPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// normalizeEmail lowercases and trims the address so that one mailbox maps
// to one user row regardless of how the caller spelled it.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizePhone strips the optional leading plus, leaving digits only
func normalizePhone(phone string) string {
	return strings.TrimPrefix(strings.TrimSpace(phone), "+")
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.loginSvc.Login(c.Request.Context(), normalizeEmail(req.Email), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No such user"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusForbidden, gin.H{"error": "Fail to login user"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    "Bearer",
		"expires_in":    pair.ExpiresIn,
	})
}

// Refresh handles session token refresh
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.loginSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    "Bearer",
		"expires_in":    pair.ExpiresIn,
	})
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.registrationSvc.Register(
		c.Request.Context(),
		normalizeEmail(req.Email),
		normalizePhone(req.Phone),
		req.Password,
	)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Such user already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    "Bearer",
		"expires_in":    pair.ExpiresIn,
	})
}

// ConfirmEmail handles the confirmation link from the registration mail.
// Both a fresh and an expired (but authentic) token end in a redirect; only
// a forged token is rejected.
func (h *AuthHandlers) ConfirmEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	redirectURL, err := h.registrationSvc.ConfirmEmail(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid confirmation token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Email confirmation failed"})
		return
	}

	c.Redirect(http.StatusSeeOther, redirectURL)
}

// RequestReset handles sending the password reset mail
func (h *AuthHandlers) RequestReset(c *gin.Context) {
	var req RecoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.recoverySvc.RequestReset(c.Request.Context(), normalizeEmail(req.Email)); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No such user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to request password reset"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ResetPassword handles the final password reset step
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req NewPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.recoverySvc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenInvalid):
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid reset token"})
		case errors.Is(err, domain.ErrResetLinkExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "A link for recover was expired"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
