// internal/pkg/auth/password.go
package auth

import (
	"fmt"
	"strings"

	"github.com/tochayanroy/ecomapp-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// PasswordManager handles password hashing and verification
type PasswordManager struct {
	cost int
}

// NewPasswordManager creates a new password manager
func NewPasswordManager(cfg *config.Config) *PasswordManager {
	cost := cfg.Security.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordManager{cost: cost}
}

// HashPassword hashes a plain-text password
func (p *PasswordManager) HashPassword(password string) (string, error) {
	if err := ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword compares a plain-text password with a bcrypt hash
func (p *PasswordManager) VerifyPassword(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("password does not match")
	}
	return nil
}

// ValidatePasswordStrength applies the password policy
func ValidatePasswordStrength(password string) error {
	trimmed := strings.TrimSpace(password)
	if len(trimmed) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(trimmed) > 128 {
		return fmt.Errorf("password must be at most 128 characters long")
	}
	return nil
}
