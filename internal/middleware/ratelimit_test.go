package middleware_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jobboard/internal/handlers"
	"github.com/localnerve/jobboard/internal/middleware"
	"github.com/localnerve/jobboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLimiter is an in-process fixed window limiter
type countingLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	err    error
}

func (l *countingLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	if l.err != nil {
		return true, l.err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[key]++
	return l.counts[key] <= limit, nil
}

func newLimitedApp(limiter middleware.Limiter, limit int) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Post("/login", middleware.RateLimit(limiter, limit, time.Minute), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Post("/register", middleware.RateLimit(limiter, limit, time.Minute), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func post(t *testing.T, app *fiber.App, path string) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("POST", path, nil))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRateLimit(t *testing.T) {
	limiter := &countingLimiter{counts: map[string]int{}}
	app := newLimitedApp(limiter, 2)

	assert.Equal(t, fiber.StatusNoContent, post(t, app, "/login"))
	assert.Equal(t, fiber.StatusNoContent, post(t, app, "/login"))

	resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	env := testutil.ParseEnvelope(t, resp, nil)
	assert.Equal(t, "TOO_MANY_REQUESTS", env.ErrorCode())

	// routes are counted separately
	assert.Equal(t, fiber.StatusNoContent, post(t, app, "/register"))
}

func TestRateLimitPassThrough(t *testing.T) {
	t.Run("nil limiter", func(t *testing.T) {
		app := newLimitedApp(nil, 1)
		for i := 0; i < 3; i++ {
			assert.Equal(t, fiber.StatusNoContent, post(t, app, "/login"))
		}
	})

	t.Run("disabled redis limiter", func(t *testing.T) {
		app := newLimitedApp(middleware.NewRedisLimiter(nil), 1)
		for i := 0; i < 3; i++ {
			assert.Equal(t, fiber.StatusNoContent, post(t, app, "/login"))
		}
	})

	t.Run("limiter failure", func(t *testing.T) {
		app := newLimitedApp(&countingLimiter{err: errors.New("redis down")}, 1)
		for i := 0; i < 3; i++ {
			assert.Equal(t, fiber.StatusNoContent, post(t, app, "/login"))
		}
	})
}
