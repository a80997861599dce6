package services_test

import (
	"testing"
	"time"

	"github.com/localnerve/jobboard/internal/services"
	"github.com/localnerve/jobboard/internal/testutil"
	"github.com/localnerve/jobboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	tm := services.NewTokenManager("test-secret", time.Hour)

	tokens, err := tm.Issue(services.KindCompany, "company-1", "hr@techlabs.example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.Equal(t, "1h0m0s", tokens.ExpiresIn)

	claims, err := tm.Verify(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, services.KindCompany, claims.Kind)
	assert.Equal(t, "company-1", claims.Subject)
	assert.Equal(t, "hr@techlabs.example.com", claims.Email)

	_, err = services.NewTokenManager("other-secret", time.Hour).Verify(tokens.AccessToken)
	assert.ErrorIs(t, err, types.ErrInvalidToken)

	expired, err := services.NewTokenManager("test-secret", -time.Minute).Issue(services.KindCandidate, "c-1", "a@example.com", "email")
	require.NoError(t, err)
	_, err = tm.Verify(expired.AccessToken)
	assert.ErrorIs(t, err, types.ErrTokenExpired)

	_, err = tm.Verify("not-a-token")
	assert.ErrorIs(t, err, types.ErrInvalidToken)
}

func TestPasswords(t *testing.T) {
	hash, err := services.HashPassword(testutil.TestPassword)
	require.NoError(t, err)
	assert.True(t, services.CheckPassword(hash, testutil.TestPassword))
	assert.False(t, services.CheckPassword(hash, "Secret124"))
	assert.False(t, services.CheckPassword("", testutil.TestPassword))
}
