package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jobboard/internal/config"
	"github.com/localnerve/jobboard/internal/services"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthHandler reports the state of the service's dependencies
type HealthHandler struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
}

// Health handles GET /health
// @Summary Health check
// @Description Checks the database and, when configured, Redis and the Authorizer
// @Tags Ops
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.DB, h.Redis)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
