package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/localnerve/jobboard/internal/models"
	"github.com/localnerve/jobboard/internal/services"
	"github.com/localnerve/jobboard/internal/testutil"
	"github.com/localnerve/jobboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLoginCandidate(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)

	candidate, err := services.RegisterCandidate(ctx, db, &services.RegisterInput{
		Name:     "  Asha Rao ",
		Email:    " Asha@Example.com",
		Password: testutil.TestPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", candidate.Name)
	assert.Equal(t, "asha@example.com", candidate.Email)
	assert.Equal(t, models.LoginTypeEmail, candidate.LoginType)
	assert.NotEqual(t, testutil.TestPassword, candidate.PasswordHash)
	assert.NotNil(t, candidate.LastLogin)

	_, err = services.RegisterCandidate(ctx, db, &services.RegisterInput{
		Name:     "Asha Again",
		Email:    "asha@example.com",
		Password: testutil.TestPassword,
	})
	assert.ErrorIs(t, err, types.ErrUserExists)

	loggedIn, err := services.LoginCandidate(ctx, db, &services.LoginInput{Email: "ASHA@example.com", Password: testutil.TestPassword})
	require.NoError(t, err)
	assert.Equal(t, candidate.ID, loggedIn.ID)

	_, err = services.LoginCandidate(ctx, db, &services.LoginInput{Email: "asha@example.com", Password: "Wrong1234"})
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)

	_, err = services.LoginCandidate(ctx, db, &services.LoginInput{Email: "nobody@example.com", Password: testutil.TestPassword})
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)
}

func TestGoogleCandidateProvisioning(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)

	identity := &services.GoogleIdentity{
		Subject:     "google-sub-1",
		Email:       "Ravi@Example.com",
		Name:        "Ravi Kumar",
		Picture:     "https://images.example.com/ravi.png",
		FirebaseUID: "firebase-1",
	}

	created, err := services.ProvisionGoogleCandidate(ctx, db, identity)
	require.NoError(t, err)
	assert.Equal(t, models.LoginTypeGoogle, created.LoginType)
	assert.Equal(t, "ravi@example.com", created.Email)
	assert.True(t, created.IsEmailVerified)
	assert.NotEmpty(t, created.PasswordHash)
	require.NotNil(t, created.GoogleID)
	assert.Equal(t, "google-sub-1", *created.GoogleID)

	again, err := services.ProvisionGoogleCandidate(ctx, db, identity)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	t.Run("google account cannot use password login", func(t *testing.T) {
		_, err := services.LoginCandidate(ctx, db, &services.LoginInput{Email: "ravi@example.com", Password: testutil.TestPassword})
		assert.ErrorIs(t, err, types.ErrGoogleUser)
	})

	t.Run("google account blocks email registration", func(t *testing.T) {
		_, err := services.RegisterCandidate(ctx, db, &services.RegisterInput{
			Name:     "Ravi",
			Email:    "ravi@example.com",
			Password: testutil.TestPassword,
		})
		assert.ErrorIs(t, err, types.ErrGoogleUserExists)
	})

	t.Run("email account is never linked", func(t *testing.T) {
		testutil.CreateTestCandidate(t, db, "meera@example.com")
		_, err := services.ProvisionGoogleCandidate(ctx, db, &services.GoogleIdentity{
			Subject: "google-sub-2",
			Email:   "meera@example.com",
			Name:    "Meera",
		})
		assert.ErrorIs(t, err, types.ErrEmailUserExists)
	})

	t.Run("google account without an id is linked by email", func(t *testing.T) {
		legacy := &models.Candidate{
			Name:      "Kiran",
			Email:     "kiran@example.com",
			LoginType: models.LoginTypeGoogle,
			IsActive:  true,
		}
		require.NoError(t, db.Create(legacy).Error)

		linked, err := services.ProvisionGoogleCandidate(ctx, db, &services.GoogleIdentity{
			Subject: "google-sub-3",
			Email:   "kiran@example.com",
			Name:    "Kiran",
			Picture: "https://images.example.com/kiran.png",
		})
		require.NoError(t, err)
		assert.Equal(t, legacy.ID, linked.ID)
		require.NotNil(t, linked.GoogleID)
		assert.Equal(t, "google-sub-3", *linked.GoogleID)
		assert.Equal(t, "https://images.example.com/kiran.png", linked.ProfilePicture)
	})

	t.Run("incomplete identity", func(t *testing.T) {
		_, err := services.ProvisionGoogleCandidate(ctx, db, &services.GoogleIdentity{Subject: "google-sub-4"})
		assert.ErrorIs(t, err, types.ErrInvalidUserInfo)
	})

	t.Run("deactivated google account", func(t *testing.T) {
		require.NoError(t, db.Model(&models.Candidate{}).Where("id = ?", created.ID).Update("is_active", false).Error)
		_, err := services.ProvisionGoogleCandidate(ctx, db, identity)
		assert.ErrorIs(t, err, types.ErrAccountDeactivated)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	candidate := testutil.CreateTestCandidate(t, db, "asha@example.com")

	err := services.ChangePassword(ctx, db, candidate.ID, &services.ChangePasswordInput{
		CurrentPassword: "NotMine123",
		NewPassword:     "Another123",
	})
	assert.ErrorIs(t, err, types.ErrInvalidPassword)

	require.NoError(t, services.ChangePassword(ctx, db, candidate.ID, &services.ChangePasswordInput{
		CurrentPassword: testutil.TestPassword,
		NewPassword:     "Another123",
	}))

	_, err = services.LoginCandidate(ctx, db, &services.LoginInput{Email: "asha@example.com", Password: "Another123"})
	assert.NoError(t, err)

	google, err := services.ProvisionGoogleCandidate(ctx, db, &services.GoogleIdentity{
		Subject: "google-sub-1",
		Email:   "ravi@example.com",
		Name:    "Ravi",
	})
	require.NoError(t, err)
	err = services.ChangePassword(ctx, db, google.ID, &services.ChangePasswordInput{
		CurrentPassword: "whatever",
		NewPassword:     "Another123",
	})
	assert.ErrorIs(t, err, types.ErrInvalidOperation)
}

func TestDeactivateCandidateFreesEmail(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	candidate := testutil.CreateTestCandidate(t, db, "asha@example.com")

	require.NoError(t, services.DeactivateCandidate(ctx, db, candidate.ID))

	stored, err := services.GetCandidate(ctx, db, candidate.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.True(t, strings.HasPrefix(stored.Email, "deleted_"))
	assert.True(t, strings.HasSuffix(stored.Email, "_asha@example.com"))

	_, err = services.LoginCandidate(ctx, db, &services.LoginInput{Email: "asha@example.com", Password: testutil.TestPassword})
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)

	fresh, err := services.RegisterCandidate(ctx, db, &services.RegisterInput{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: testutil.TestPassword,
	})
	require.NoError(t, err)
	assert.NotEqual(t, candidate.ID, fresh.ID)
}
