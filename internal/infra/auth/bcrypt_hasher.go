// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"vidtube/config"
	"vidtube/internal/domain/service"

	"github.com/pkg/errors"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost      int
	minLength int
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	minLength := 8
	if cfg != nil && cfg.Auth != nil {
		if cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
			cost = cfg.Auth.BcryptCost
		}
		if cfg.Auth.PasswordMinLength > 0 {
			minLength = cfg.Auth.PasswordMinLength
		}
	}

	return &bcryptHasher{cost: cost, minLength: minLength}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength enforces the minimum length and requires at least
// one letter and one digit.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if len(password) < h.minLength {
		return errors.Errorf("password must be at least %d characters", h.minLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return errors.New("password must contain at least one letter and one digit")
	}

	return nil
}
