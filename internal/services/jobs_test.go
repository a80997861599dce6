package services_test

import (
	"context"
	"sort"
	"strings"
	"time"
	"testing"

	"github.com/localnerve/jobboard/internal/models"
	"github.com/localnerve/jobboard/internal/services"
	"github.com/localnerve/jobboard/internal/testutil"
	"github.com/localnerve/jobboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func jobInput(title string) *services.JobInput {
	return &services.JobInput{
		Title:          title,
		Location:       "Pune",
		Domain:         "Web Development",
		Salary:         "₹6-8 LPA",
		Description:    strings.Repeat("Build reliable services for our customers. ", 3),
		Eligibility:    "B.Tech in any branch",
		EducationLevel: "Graduate",
		Course:         "B.Tech / B.E",
		Specialization: "CSE",
		Skills:         []string{"Go", "PostgreSQL"},
	}
}

func reloadCompany(t *testing.T, db *gorm.DB, id string) *models.Company {
	t.Helper()
	var c models.Company
	require.NoError(t, db.Where("id = ?", id).First(&c).Error)
	return &c
}

func TestCreateJob(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	company := testutil.CreateTestCompany(t, db, "Tech Labs", "hr@techlabs.example.com")

	t.Run("company posting", func(t *testing.T) {
		in := jobInput("Backend Engineer")
		in.Company = "Someone Else"
		job, err := services.CreateJob(ctx, db, company, in)
		require.NoError(t, err)

		assert.Equal(t, "Tech Labs", job.Company)
		assert.True(t, job.OwnedBy(company.ID))
		assert.Equal(t, models.PostedByCompany, job.PostedBy)
		assert.True(t, job.IsActive)
		assert.True(t, strings.HasPrefix(job.Slug, "backend-engineer-"))
		assert.False(t, job.ExpiresAt.IsZero())
		assert.Equal(t, []string{"Go", "PostgreSQL"}, job.Skills.Data())

		stored := reloadCompany(t, db, company.ID)
		assert.EqualValues(t, 1, stored.TotalJobsPosted)
		assert.EqualValues(t, 1, stored.ActiveJobs)
	})

	t.Run("inactive company posting", func(t *testing.T) {
		in := jobInput("Platform Engineer")
		inactive := false
		in.IsActive = &inactive
		job, err := services.CreateJob(ctx, db, company, in)
		require.NoError(t, err)

		stored, err := services.GetJob(ctx, db, job.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsActive)

		c := reloadCompany(t, db, company.ID)
		assert.EqualValues(t, 2, c.TotalJobsPosted)
		assert.EqualValues(t, 1, c.ActiveJobs)
	})

	t.Run("inactive admin posting stays out of listings", func(t *testing.T) {
		in := jobInput("Dormant Admin Role")
		in.Company = "Admin Corp"
		inactive := false
		in.IsActive = &inactive
		job, err := services.CreateJob(ctx, db, nil, in)
		require.NoError(t, err)
		assert.False(t, job.IsActive)

		stored, err := services.GetJob(ctx, db, job.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsActive)

		page, err := services.ListJobs(ctx, db, services.JobFilter{Search: "dormant"})
		require.NoError(t, err)
		assert.Empty(t, page.Jobs)
	})

	t.Run("admin posting needs a company name", func(t *testing.T) {
		_, err := services.CreateJob(ctx, db, nil, jobInput("Site Reliability Engineer"))
		assert.True(t, types.HasType(err, types.CodeValidation))

		in := jobInput("Site Reliability Engineer")
		in.Company = "Admin Corp"
		job, err := services.CreateJob(ctx, db, nil, in)
		require.NoError(t, err)
		assert.Nil(t, job.CompanyID)
		assert.Equal(t, models.PostedByAdmin, job.PostedBy)
	})
}

func TestCompanyJobOwnership(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	owner := testutil.CreateTestCompany(t, db, "Tech Labs", "hr@techlabs.example.com")
	other := testutil.CreateTestCompany(t, db, "DataCorp", "hr@datacorp.example.com")
	job, err := services.CreateJob(ctx, db, owner, jobInput("Backend Engineer"))
	require.NoError(t, err)

	t.Run("other company cannot see it", func(t *testing.T) {
		_, err := services.GetCompanyJob(ctx, db, job.ID, other.ID)
		assert.ErrorIs(t, err, types.ErrJobNotFound)
		_, err = services.UpdateJob(ctx, db, job.ID, other.ID, jobInput("Hijacked Posting"))
		assert.ErrorIs(t, err, types.ErrJobNotFound)
		_, err = services.ToggleJob(ctx, db, job.ID, other.ID)
		assert.ErrorIs(t, err, types.ErrJobNotFound)
		assert.ErrorIs(t, services.DeleteJob(ctx, db, job.ID, other.ID), types.ErrJobNotFound)
	})

	t.Run("owner updates", func(t *testing.T) {
		updated, err := services.UpdateJob(ctx, db, job.ID, owner.ID, jobInput("Senior Backend Engineer"))
		require.NoError(t, err)
		assert.Equal(t, "Senior Backend Engineer", updated.Title)
		assert.True(t, strings.HasPrefix(updated.Slug, "senior-backend-engineer-"))
		assert.Equal(t, "Tech Labs", updated.Company)
	})

	t.Run("toggle recomputes counters", func(t *testing.T) {
		toggled, err := services.ToggleJob(ctx, db, job.ID, owner.ID)
		require.NoError(t, err)
		assert.False(t, toggled.IsActive)
		assert.EqualValues(t, 0, reloadCompany(t, db, owner.ID).ActiveJobs)

		toggled, err = services.ToggleJob(ctx, db, job.ID, owner.ID)
		require.NoError(t, err)
		assert.True(t, toggled.IsActive)
		assert.EqualValues(t, 1, reloadCompany(t, db, owner.ID).ActiveJobs)
	})

	t.Run("delete keeps applications", func(t *testing.T) {
		candidate := testutil.CreateTestCandidate(t, db, "asha@example.com")
		app := testutil.CreateTestApplication(t, db, candidate, job, models.StatusPending)

		require.NoError(t, services.DeleteJob(ctx, db, job.ID, owner.ID))
		c := reloadCompany(t, db, owner.ID)
		assert.EqualValues(t, 0, c.TotalJobsPosted)
		assert.EqualValues(t, 0, c.ActiveJobs)

		var count int64
		require.NoError(t, db.Model(&models.Application{}).Where("id = ?", app.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})
}

func TestListJobs(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)

	testutil.CreateTestJob(t, db, nil, "Junior ML Engineer",
		testutil.WithDomain("AI / ML"), testutil.WithLocation("Bangalore"))
	testutil.CreateTestJob(t, db, nil, "AI Research Intern",
		testutil.WithDomain("AI / ML"), testutil.WithLocation("Hyderabad"), testutil.WithEducationLevel("Post Graduate"))
	testutil.CreateTestJob(t, db, nil, "Data Analyst",
		testutil.WithDomain("Data Analysis"), testutil.WithLocation("Mumbai"))
	hidden := testutil.CreateTestJob(t, db, nil, "Hidden ML Role", testutil.WithDomain("AI / ML"))
	require.NoError(t, db.Model(hidden).Update("is_active", false).Error)

	tests := []struct {
		name   string
		filter services.JobFilter
		want   int
	}{
		{"all active", services.JobFilter{}, 3},
		{"domain", services.JobFilter{Domain: "AI / ML"}, 2},
		{"location substring", services.JobFilter{Location: "HYDER"}, 1},
		{"education level", services.JobFilter{EducationLevel: "Post Graduate"}, 1},
		{"search title", services.JobFilter{Search: "analyst"}, 1},
		{"search domain", services.JobFilter{Search: "ml"}, 2},
		{"combined", services.JobFilter{Domain: "AI / ML", Location: "bangalore"}, 1},
		{"no match", services.JobFilter{Domain: "Finance"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := services.ListJobs(ctx, db, tt.filter)
			require.NoError(t, err)
			assert.Len(t, page.Jobs, tt.want)
			assert.EqualValues(t, tt.want, *page.Pagination.TotalJobs)
			for _, job := range page.Jobs {
				assert.True(t, job.IsActive)
			}
		})
	}

	t.Run("paging", func(t *testing.T) {
		page, err := services.ListJobs(ctx, db, services.JobFilter{Paging: services.Paging{Page: 1, Limit: 2}})
		require.NoError(t, err)
		assert.Len(t, page.Jobs, 2)
		assert.Equal(t, 2, page.Pagination.TotalPages)
		assert.True(t, page.Pagination.HasNext)
		assert.Equal(t, 2, page.Pagination.PerPage)
	})
}

func TestListCompanyJobs(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	company := testutil.CreateTestCompany(t, db, "Tech Labs", "hr@techlabs.example.com")
	testutil.CreateTestJob(t, db, company, "Backend Engineer")
	off := testutil.CreateTestJob(t, db, company, "Frontend Engineer")
	require.NoError(t, db.Model(off).Update("is_active", false).Error)
	testutil.CreateTestJob(t, db, nil, "Admin Posting")

	for status, want := range map[string]int{"": 2, "all": 2, "active": 1, "inactive": 1} {
		page, err := services.ListCompanyJobs(ctx, db, company.ID, services.CompanyJobFilter{Status: status})
		require.NoError(t, err)
		assert.Len(t, page.Jobs, want, "status %q", status)
	}
}

func TestGetJobAndMeta(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	testutil.CreateTestJob(t, db, nil, "Junior ML Engineer", testutil.WithDomain("AI / ML"), testutil.WithLocation("Pune"))
	testutil.CreateTestJob(t, db, nil, "Data Analyst", testutil.WithDomain("Data Analysis"), testutil.WithLocation("Mumbai"))
	testutil.CreateTestJob(t, db, nil, "ML Ops Engineer", testutil.WithDomain("AI / ML"), testutil.WithLocation("Mumbai"))
	closed := testutil.CreateTestJob(t, db, nil, "Closed Role", testutil.WithDomain("Finance"))
	require.NoError(t, db.Model(closed).Update("is_active", false).Error)

	_, err := services.GetJob(ctx, db, "00000000-0000-0000-0000-000000000000")
	assert.True(t, types.HasType(err, types.CodeNotFound))

	job, err := services.GetJob(ctx, db, closed.ID)
	require.NoError(t, err)
	assert.False(t, job.IsActive)

	domains, err := services.JobMeta(ctx, db, services.MetaDomains)
	require.NoError(t, err)
	assert.Equal(t, []string{"AI / ML", "Data Analysis"}, domains)

	locations, err := services.JobMeta(ctx, db, services.MetaLocations)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mumbai", "Pune"}, locations)

	companies, err := services.JobMeta(ctx, db, services.MetaCompanies)
	require.NoError(t, err)
	assert.Equal(t, []string{"Admin Posted"}, companies)

	_, err = services.JobMeta(ctx, db, "description")
	assert.Error(t, err)
}

func TestAdminUpdateRecomputesCompanyCounters(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	company := testutil.CreateTestCompany(t, db, "Tech Labs", "hr@techlabs.example.com")
	job, err := services.CreateJob(ctx, db, company, jobInput("Backend Engineer"))
	require.NoError(t, err)
	require.EqualValues(t, 1, reloadCompany(t, db, company.ID).ActiveJobs)

	in := jobInput("Backend Engineer")
	inactive := false
	in.IsActive = &inactive
	updated, err := services.UpdateJob(ctx, db, job.ID, "", in)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	c := reloadCompany(t, db, company.ID)
	assert.EqualValues(t, 0, c.ActiveJobs)
	assert.EqualValues(t, 1, c.TotalJobsPosted)
}

func TestListJobsStableOrder(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	at := time.Now().Add(-time.Hour).Truncate(time.Second)

	var want []string
	for _, title := range []string{"Role One", "Role Two", "Role Three", "Role Four", "Role Five"} {
		want = append(want, testutil.CreateTestJob(t, db, nil, title, testutil.WithCreatedAt(at)).ID)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(want)))

	var got []string
	for page := 1; page <= 3; page++ {
		res, err := services.ListJobs(ctx, db, services.JobFilter{Paging: services.Paging{Page: page, Limit: 2}})
		require.NoError(t, err)
		for _, job := range res.Jobs {
			got = append(got, job.ID)
		}
	}
	assert.Equal(t, want, got)
}
