// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, time.Minute, cfg.Security.OTPExpiry)
	assert.Equal(t, int64(500), cfg.Shipping.FreeThreshold)
	assert.Equal(t, int64(50), cfg.Shipping.FlatFee)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SHIPPING_FLAT_FEE", "75")
	t.Setenv("OTP_EXPIRY", "2m")
	t.Setenv("APP_DEBUG", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, int64(75), cfg.Shipping.FlatFee)
	assert.Equal(t, 2*time.Minute, cfg.Security.OTPExpiry)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSAllowedOrigins)
}

func TestInvalidEnvValuesFallBack(t *testing.T) {
	t.Setenv("SHIPPING_FLAT_FEE", "not-a-number")
	t.Setenv("OTP_EXPIRY", "garbage")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(50), cfg.Shipping.FlatFee)
	assert.Equal(t, time.Minute, cfg.Security.OTPExpiry)
}

func TestValidateRejectsShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRejectsNegativeShipping(t *testing.T) {
	t.Setenv("SHIPPING_FLAT_FEE", "-5")

	_, err := Load()
	assert.Error(t, err)
}

func TestConnectionStrings(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.GetDatabaseDSN(), "host=localhost")
	assert.Contains(t, cfg.GetDatabaseDSN(), "dbname=ecomapp_db")
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
}
