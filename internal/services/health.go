package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/localnerve/jobboard/internal/config"
	"github.com/localnerve/jobboard/internal/utils"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Redis        string            `json:"redis"`
	Authorizer   string            `json:"authorizer"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

func (r *HealthCheckResult) fail(component, detail string, err error) {
	r.Status = "unhealthy"
	r.Details[detail] = err.Error()
	msg := fmt.Sprintf("%s: %v", component, err)
	if r.ErrorMessage == "" {
		r.ErrorMessage = msg
	} else {
		r.ErrorMessage += "; " + msg
	}
	log.Printf("Health check failed - %s", msg)
}

// HealthCheck checks the database and, when configured, Redis and the Authorizer.
// A nil rdb means the rate limiter is disabled.
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client) HealthCheckResult {
	result := HealthCheckResult{
		Status:     "healthy",
		Redis:      "disabled",
		Authorizer: "disabled",
		Details:    make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	sqlDB, err := db.DB()
	if err != nil {
		result.Database = "error"
		result.fail("Database connection error", "database_error", err)
	} else if err := sqlDB.PingContext(ctx); err != nil {
		result.Database = "unreachable"
		result.fail("Database ping failed", "database_ping_error", err)
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBAppDatabase
	}

	if rdb != nil {
		if err := rdb.Ping(ctx).Err(); err != nil {
			result.Redis = "unreachable"
			result.fail("Redis ping failed", "redis_error", err)
		} else {
			result.Redis = "ok"
			result.Details["redis_addr"] = cfg.RedisAddr
		}
	}

	if cfg.AuthzURL != "" {
		if err := utils.PingService(ctx, cfg.AuthzURL); err != nil {
			result.Authorizer = "unreachable"
			result.fail("Authorizer ping failed", "authorizer_error", err)
		} else {
			result.Authorizer = "ok"
			result.Details["authorizer_url"] = cfg.AuthzURL
		}
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
