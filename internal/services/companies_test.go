package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/localnerve/jobboard/internal/models"
	"github.com/localnerve/jobboard/internal/services"
	"github.com/localnerve/jobboard/internal/testutil"
	"github.com/localnerve/jobboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLoginCompany(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)

	company, err := services.RegisterCompany(ctx, db, &services.CompanyRegisterInput{
		Name:     " Tech Labs ",
		Email:    "HR@TechLabs.example.com",
		Password: testutil.TestPassword,
		Industry: "Software",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tech Labs", company.Name)
	assert.Equal(t, "hr@techlabs.example.com", company.Email)
	assert.True(t, company.IsActive)
	assert.False(t, company.IsVerified)

	_, err = services.RegisterCompany(ctx, db, &services.CompanyRegisterInput{
		Name:     "Tech Labs Again",
		Email:    "hr@techlabs.example.com",
		Password: testutil.TestPassword,
	})
	assert.ErrorIs(t, err, types.ErrCompanyExists)

	loggedIn, err := services.LoginCompany(ctx, db, &services.LoginInput{Email: "hr@techlabs.example.com", Password: testutil.TestPassword})
	require.NoError(t, err)
	assert.Equal(t, company.ID, loggedIn.ID)

	_, err = services.LoginCompany(ctx, db, &services.LoginInput{Email: "hr@techlabs.example.com", Password: "Wrong1234"})
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)

	require.NoError(t, db.Model(&models.Company{}).Where("id = ?", company.ID).Update("is_active", false).Error)
	_, err = services.LoginCompany(ctx, db, &services.LoginInput{Email: "hr@techlabs.example.com", Password: testutil.TestPassword})
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)
}

func TestUpdateCompanyProfile(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	company := testutil.CreateTestCompany(t, db, "Tech Labs", "hr@techlabs.example.com")

	founded := types.FlexInt(2015)
	_, err := services.UpdateCompanyProfile(ctx, db, company.ID, &services.CompanyProfileUpdate{
		Size:        strPtr("51-200"),
		Founded:     &founded,
		ContactInfo: json.RawMessage(`{"phone":"020-1234","address":{"city":"Pune","country":"India"}}`),
		HRContact:   json.RawMessage(`{"name":"Neha","email":"neha@techlabs.example.com"}`),
	})
	require.NoError(t, err)

	updated, err := services.UpdateCompanyProfile(ctx, db, company.ID, &services.CompanyProfileUpdate{
		Website:     strPtr("https://techlabs.example.com"),
		ContactInfo: json.RawMessage(`{"address":{"state":"Maharashtra"}}`),
		HRContact:   json.RawMessage(`{"designation":"Talent Lead"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, "Tech Labs", updated.Name)
	assert.Equal(t, "51-200", updated.Size)
	require.NotNil(t, updated.Founded)
	assert.Equal(t, 2015, *updated.Founded)
	assert.Equal(t, "https://techlabs.example.com", updated.Website)

	contact := updated.ContactInfo.Data()
	assert.Equal(t, "020-1234", contact.Phone)
	require.NotNil(t, contact.Address)
	assert.Equal(t, "Pune", contact.Address.City)
	assert.Equal(t, "Maharashtra", contact.Address.State)

	hr := updated.HRContact.Data()
	assert.Equal(t, "Neha", hr.Name)
	assert.Equal(t, "Talent Lead", hr.Designation)

	t.Run("invalid hr email", func(t *testing.T) {
		_, err := services.UpdateCompanyProfile(ctx, db, company.ID, &services.CompanyProfileUpdate{
			HRContact: json.RawMessage(`{"email":"not-an-email"}`),
		})
		assert.True(t, types.HasType(err, types.CodeValidation))
	})

	t.Run("unknown company", func(t *testing.T) {
		_, err := services.UpdateCompanyProfile(ctx, db, "00000000-0000-0000-0000-000000000000", &services.CompanyProfileUpdate{})
		assert.ErrorIs(t, err, types.ErrCompanyNotFound)
	})
}

func TestCompanyDashboard(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	company := testutil.CreateTestCompany(t, db, "Tech Labs", "hr@techlabs.example.com")
	other := testutil.CreateTestCompany(t, db, "DataCorp", "hr@datacorp.example.com")

	web := testutil.CreateTestJob(t, db, company, "Backend Engineer")
	ml := testutil.CreateTestJob(t, db, company, "ML Engineer",
		testutil.WithDomain("AI / ML"), testutil.WithEducationLevel("Post Graduate"))
	old := testutil.CreateTestJob(t, db, company, "Legacy Role",
		testutil.WithCreatedAt(time.Now().Add(-60*24*time.Hour)))
	require.NoError(t, db.Model(old).Update("is_active", false).Error)
	foreign := testutil.CreateTestJob(t, db, other, "Data Analyst")

	a := testutil.CreateTestCandidate(t, db, "a@example.com")
	b := testutil.CreateTestCandidate(t, db, "b@example.com")
	c := testutil.CreateTestCandidate(t, db, "c@example.com")
	testutil.CreateTestApplication(t, db, a, web, models.StatusPending)
	testutil.CreateTestApplication(t, db, b, web, models.StatusShortlisted)
	testutil.CreateTestApplication(t, db, c, ml, models.StatusHired)
	stale := testutil.CreateTestApplication(t, db, a, ml, models.StatusPending)
	testutil.CreateTestApplication(t, db, a, foreign, models.StatusPending)
	require.NoError(t, db.Model(stale).Update("applied_at", time.Now().Add(-30*24*time.Hour)).Error)

	d, err := services.CompanyDashboard(ctx, db, company.ID)
	require.NoError(t, err)

	s := d.Statistics
	assert.EqualValues(t, 3, s.TotalJobs)
	assert.EqualValues(t, 2, s.ActiveJobs)
	assert.EqualValues(t, 1, s.InactiveJobs)
	assert.EqualValues(t, 2, s.RecentJobs)
	assert.EqualValues(t, 4, s.TotalApplications)
	assert.EqualValues(t, 2, s.PendingApplications)
	assert.EqualValues(t, 1, s.ShortlistedApplications)
	assert.EqualValues(t, 1, s.HiredApplications)
	assert.EqualValues(t, 3, s.RecentApplications)

	domains := map[string]int64{}
	for _, g := range d.Charts.JobsByDomain {
		domains[g.ID] = g.Count
	}
	assert.Equal(t, map[string]int64{"Web Development": 2, "AI / ML": 1}, domains)
	assert.Equal(t, "Web Development", d.Charts.JobsByDomain[0].ID)

	education := map[string]int64{}
	for _, g := range d.Charts.JobsByEducation {
		education[g.ID] = g.Count
	}
	assert.Equal(t, map[string]int64{"Graduate": 2, "Post Graduate": 1}, education)

	statuses := map[string]int64{}
	for _, g := range d.Charts.ApplicationsByStatus {
		statuses[g.ID] = g.Count
	}
	assert.Equal(t, map[string]int64{models.StatusPending: 2, models.StatusShortlisted: 1, models.StatusHired: 1}, statuses)

	t.Run("empty company", func(t *testing.T) {
		fresh := testutil.CreateTestCompany(t, db, "Fresh Co", "hr@fresh.example.com")
		d, err := services.CompanyDashboard(ctx, db, fresh.ID)
		require.NoError(t, err)
		assert.Zero(t, d.Statistics.TotalJobs)
		assert.Empty(t, d.Charts.ApplicationsByStatus)
	})
}
