package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/xsiva15/Auth/domain"
)

// PasswordServiceImpl implements domain.PasswordService
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a new password service with the given bcrypt
// cost. A zero cost falls back to 12 rounds.
func NewPasswordService(cost int) domain.PasswordService {
	if cost == 0 {
		cost = 12
	}
	return &PasswordServiceImpl{cost: cost}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService. A malformed hash fails closed.
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// NeedsRehash reports whether the stored hash was produced with a cost
// different from the configured one. Hashes that cannot be parsed also
// report true so they get replaced on the next successful login.
func (p *PasswordServiceImpl) NeedsRehash(hashedPassword string) bool {
	cost, err := bcrypt.Cost([]byte(hashedPassword))
	if err != nil {
		return true
	}
	return cost != p.cost
}
