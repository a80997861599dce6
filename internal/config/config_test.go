package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", "jobboard.db")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	for _, key := range []string{"PORT", "JWT_EXPIRES_IN", "AUTH_RATE_LIMIT", "AUTH_RATE_WINDOW", "GOOGLE_CLIENT_ID"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 10, cfg.AuthRateLimit)
	assert.Equal(t, time.Minute, cfg.AuthRateWindow)
	assert.False(t, cfg.GoogleOAuthEnabled())
}

func TestLoadRequiresSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestLoadRequiresAppUserForServerDatabases(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_APP_USER", "")

	_, err := Load()
	assert.EqualError(t, err, "DB_APP_USER is required")
}

func TestLoadAuthorizerNeedsClientID(t *testing.T) {
	setRequired(t)
	t.Setenv("AUTHZ_URL", "http://authorizer:8080")
	t.Setenv("AUTHZ_CLIENT_ID", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "3d")
	assert.Equal(t, 72*time.Hour, getEnvAsDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "90m")
	assert.Equal(t, 90*time.Minute, getEnvAsDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "soon")
	assert.Equal(t, time.Second, getEnvAsDuration("TEST_DURATION", time.Second))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, getEnvAsInt("TEST_INT", 1))

	t.Setenv("TEST_INT", "forty-two")
	assert.Equal(t, 1, getEnvAsInt("TEST_INT", 1))
}
