// internal/pkg/auth/password_test.go
package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tochayanroy/ecomapp-backend/internal/config"
)

func testPasswordConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{BcryptCost: 4}, // min cost keeps tests fast
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	manager := NewPasswordManager(testPasswordConfig())

	hash, err := manager.HashPassword("supersecret1")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret1", hash)

	assert.NoError(t, manager.VerifyPassword("supersecret1", hash))
	assert.Error(t, manager.VerifyPassword("wrongpassword", hash))
}

func TestPasswordStrengthPolicy(t *testing.T) {
	assert.Error(t, ValidatePasswordStrength("short"))
	assert.Error(t, ValidatePasswordStrength("       "))
	assert.NoError(t, ValidatePasswordStrength("longenough"))

	long := make([]byte, 129)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, ValidatePasswordStrength(string(long)))
}

func TestHashRejectsWeakPassword(t *testing.T) {
	manager := NewPasswordManager(testPasswordConfig())

	_, err := manager.HashPassword("weak")
	assert.Error(t, err)
}
