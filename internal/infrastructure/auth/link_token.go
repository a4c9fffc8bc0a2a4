package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/xsiva15/Auth/domain"
)

// LinkTokenCodec implements domain.LinkTokenService. It is instantiated once
// per token namespace (email confirmation, password reset) with its own
// secret, lifespan and base URL, so rotating one secret never invalidates
// the other namespace.
type LinkTokenCodec struct {
	baseURL   string
	secretKey []byte
	lifespan  time.Duration
}

// NewLinkTokenCodec creates a link token codec for one token namespace
func NewLinkTokenCodec(baseURL, secretKey string, lifespan time.Duration) domain.LinkTokenService {
	return &LinkTokenCodec{
		baseURL:   baseURL,
		secretKey: []byte(secretKey),
		lifespan:  lifespan,
	}
}

// GenerateLink implements domain.LinkTokenService. The returned string is a
// ready-to-use URL of the form baseURL + "?token=" + token.
func (c *LinkTokenCodec) GenerateLink(userID, email string) (string, error) {
	claims := jwt.MapClaims{
		"user":  userID,
		"email": email,
		"exp":   time.Now().Add(c.lifespan).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secretKey)
	if err != nil {
		return "", err
	}
	return c.baseURL + "?token=" + token, nil
}

// Decode implements domain.LinkTokenService. Signature validity is checked
// separately from freshness: a token past its exp still decodes, with
// Expired set in the result, so the caller can answer a stale link with a
// fresh one instead of a hard rejection. Only a bad signature or a
// malformed structure yields domain.ErrTokenInvalid.
func (c *LinkTokenCodec) Decode(tokenString string) (*domain.LinkClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return c.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	userID, ok := claims["user"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.LinkClaims{
		UserID:  userID,
		Email:   email,
		Expired: int64(exp) < time.Now().Unix(),
	}, nil
}
