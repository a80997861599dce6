package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/localnerve/jobboard/internal/database"
	"github.com/localnerve/jobboard/internal/middleware"
	"github.com/localnerve/jobboard/internal/models"
	"github.com/localnerve/jobboard/internal/services"
	"github.com/localnerve/jobboard/internal/testutil"
	"github.com/localnerve/jobboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestWithMariaDB runs the ledger against a real MariaDB and Redis
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if !testutil.DockerAvailable(context.Background()) {
		t.Skip("Skipping integration test, docker is not available")
	}

	tc, err := testutil.CreateTestContainers(t, testutil.ContainerOptions{Redis: true})
	require.NoError(t, err)
	t.Cleanup(func() { tc.Terminate(t) })

	cfg := tc.Config()
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.AutoMigrate(db))

	rdb, err := database.ConnectRedis(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	t.Run("ConcurrentSubmit", func(t *testing.T) {
		testConcurrentSubmit(t, db)
	})

	t.Run("ConcurrentTransitions", func(t *testing.T) {
		testConcurrentTransitions(t, db)
	})

	t.Run("HealthCheck", func(t *testing.T) {
		result := services.HealthCheck(context.Background(), cfg, db, rdb)
		assert.Equal(t, "healthy", result.Status, result.ErrorMessage)
		assert.Equal(t, "ok", result.Database)
		assert.Equal(t, "ok", result.Redis)
		assert.Equal(t, "disabled", result.Authorizer)
	})

	t.Run("RedisLimiter", func(t *testing.T) {
		limiter := middleware.NewRedisLimiter(rdb)
		key := fmt.Sprintf("ratelimit:test:%d", time.Now().UnixNano())
		for i := 0; i < 3; i++ {
			allowed, err := limiter.Allow(context.Background(), key, 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed, "request %d", i+1)
		}
		allowed, err := limiter.Allow(context.Background(), key, 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
	})
}

func testConcurrentSubmit(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	candidate := testutil.CreateTestCandidate(t, db, "concurrent@example.com")
	job := testutil.CreateTestJob(t, db, nil, "Concurrent Posting")

	const attempts = 10
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = services.SubmitApplication(ctx, db, candidate.ID, submitInput(job.ID))
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, types.HasType(err, types.CodeAlreadyApplied), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)
	assert.EqualValues(t, 1, jobCounter(t, db, job.ID))
}

func testConcurrentTransitions(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	company := testutil.CreateTestCompany(t, db, "Race Labs", "hr@racelabs.example.com")
	candidate := testutil.CreateTestCandidate(t, db, "racer@example.com")
	job := testutil.CreateTestJob(t, db, company, "Race Posting")
	app := testutil.CreateTestApplication(t, db, candidate, job, models.StatusPending)

	statuses := []string{models.StatusReviewed, models.StatusShortlisted, models.StatusRejected, models.StatusReviewed}
	var wg sync.WaitGroup
	for _, status := range statuses {
		wg.Add(1)
		go func(status string) {
			defer wg.Done()
			_, err := services.TransitionStatus(ctx, db, app.ID, company.ID, status, "")
			assert.NoError(t, err)
		}(status)
	}
	wg.Wait()

	final, err := services.GetCompanyApplication(ctx, db, app.ID, company.ID)
	require.NoError(t, err)
	require.Len(t, final.Actions, len(statuses))
	assert.Equal(t, final.Actions[len(final.Actions)-1].Action, final.Status)
}
