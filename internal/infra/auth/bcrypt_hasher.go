// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"upkiip/config"
	domainerrors "upkiip/internal/domain/errors"
	"upkiip/internal/domain/service"
)

const (
	defaultMinPasswordLength = 8
	// bcrypt truncates input beyond 72 bytes; reject instead of silently truncating.
	defaultMaxPasswordLength = 72
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost           int
	minLength      int
	maxLength      int
	requireSpecial bool
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	hasher := &bcryptHasher{
		cost:           bcrypt.DefaultCost,
		minLength:      defaultMinPasswordLength,
		maxLength:      defaultMaxPasswordLength,
		requireSpecial: true,
	}

	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		hasher.cost = cfg.Auth.BcryptCost
	}
	if cfg != nil && cfg.PasswordStrength != nil {
		if cfg.PasswordStrength.MinLength > 0 {
			hasher.minLength = cfg.PasswordStrength.MinLength
		}
		if cfg.PasswordStrength.MaxLength > 0 {
			hasher.maxLength = cfg.PasswordStrength.MaxLength
		}
		hasher.requireSpecial = cfg.PasswordStrength.RequireSpecial
	}

	return hasher
}

// NewBcryptHasherWithCost creates a hasher with an explicit cost factor.
// Lower costs keep test suites fast.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{
		cost:           cost,
		minLength:      defaultMinPasswordLength,
		maxLength:      defaultMaxPasswordLength,
		requireSpecial: true,
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
// A malformed hash fails closed: the comparison simply reports a mismatch.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// ValidatePasswordStrength enforces the platform password policy: a minimum
// length and at least one special character. The same policy runs in the web
// client, but the API enforces it independently of which client calls it.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if len(password) < h.minLength {
		return domainerrors.ErrPasswordStrength.WrapMessage("password is too short")
	}
	if len(password) > h.maxLength {
		return domainerrors.ErrPasswordStrength.WrapMessage("password is too long")
	}
	if h.requireSpecial && !hasSpecialChar(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password needs at least one special character")
	}

	return nil
}

func hasSpecialChar(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}
