package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "acquisitions-api", cfg.App.Name)
	assert.Equal(t, 15, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, "dev-secret", cfg.Auth.JWTSecret)
	assert.False(t, cfg.Security.Enabled, "shield defaults off in test env")
	assert.Equal(t, 5, cfg.Security.GuestCeiling)
	assert.Equal(t, 10, cfg.Security.UserCeiling)
	assert.Equal(t, 20, cfg.Security.AdminCeiling)
	assert.Equal(t, time.Minute, cfg.Security.Window())
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestLoadAcceptsSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "prod-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prod-secret", cfg.Auth.JWTSecret)
	assert.True(t, cfg.Security.Enabled)
}

func TestLoadRejectsUnorderedCeilings(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("SECURITY_GUEST_CEILING", "50")
	t.Setenv("SECURITY_USER_CEILING", "10")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ceilings")
}
