package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/xsiva15/Auth/domain"
)

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewJWTService creates a new session token service
func NewJWTService(secretKey string, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey:       []byte(secretKey),
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
	}
}

func (j *JWTServiceImpl) sign(userID, email, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"type":    tokenType,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
		"jti":     uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// GeneratePair implements domain.TokenService. The two tokens share subject
// and email claims but carry independent expiries and a type discriminator,
// so a refresh token cannot pass for an access token even though both are
// signed with the same secret.
func (j *JWTServiceImpl) GeneratePair(userID, email string) (*domain.TokenPair, error) {
	accessToken, err := j.sign(userID, email, domain.TokenTypeAccess, j.accessTokenTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := j.sign(userID, email, domain.TokenTypeRefresh, j.refreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(j.accessTokenTTL.Seconds()),
	}, nil
}

// ValidateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateAccessToken(tokenString string) (*domain.SessionClaims, error) {
	return j.validateToken(tokenString, domain.TokenTypeAccess)
}

// ValidateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateRefreshToken(tokenString string) (*domain.SessionClaims, error) {
	return j.validateToken(tokenString, domain.TokenTypeRefresh)
}

func (j *JWTServiceImpl) validateToken(tokenString, wantType string) (*domain.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return j.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != wantType {
		return nil, domain.ErrTokenInvalid
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.SessionClaims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}
