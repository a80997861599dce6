// server.go
//
// A job board backend for candidates, companies and their applications
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jobboard.
// jobboard is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jobboard is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jobboard.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package server

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/jobboard/internal/config"
	"github.com/localnerve/jobboard/internal/handlers"
	"github.com/localnerve/jobboard/internal/middleware"
	"github.com/localnerve/jobboard/internal/services"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the collaborators the HTTP server is built from
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client // nil disables rate limiting
	Tokens   *services.TokenManager
	Google   *services.GoogleAuth // nil disables Google sign-in verification
	Taxonomy *services.Taxonomy

	// AccessLog enables the request logger
	AccessLog bool
	// Metrics registers the Prometheus collectors, which may only happen once per process
	Metrics bool
}

// New builds the Fiber app with every route mounted
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "jobboard",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	if d.AccessLog {
		app.Use(logger.New())
	}
	app.Use(compress.New())
	app.Use(newCORS(d.Config))

	if d.Metrics {
		prometheus := fiberprometheus.New("jobboard")
		prometheus.RegisterAt(app, "/metrics")
		app.Use(prometheus.Middleware)
	}

	app.Get("/swagger/*", swagger.HandlerDefault)

	health := &handlers.HealthHandler{Config: d.Config, DB: d.DB, Redis: d.Redis}
	app.Get("/health", health.Health)

	Routes(app.Group("/api"), d)

	app.Use(handlers.NotFound)

	return app
}

func newCORS(cfg *config.Config) fiber.Handler {
	if cfg.FrontendURL == "" {
		return cors.New()
	}
	return cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	})
}

// Routes mounts the API under router
func Routes(router fiber.Router, d Deps) {
	requireCandidate := middleware.RequireCandidate(d.Tokens, d.DB)
	requireCompany := middleware.RequireCompany(d.Tokens, d.DB)
	requireAdmin := middleware.AuthAdmin(d.Config)
	limit := middleware.RateLimit(middleware.NewRedisLimiter(d.Redis), d.Config.AuthRateLimit, d.Config.AuthRateWindow)

	// Candidate auth
	auth := &handlers.AuthHandler{DB: d.DB, Tokens: d.Tokens, Google: d.Google, Config: d.Config}
	authGroup := router.Group("/auth")
	authGroup.Post("/register", limit, auth.Register)
	authGroup.Post("/login", limit, auth.Login)
	authGroup.Get("/google", auth.GoogleRedirect)
	authGroup.Get("/google/callback", auth.GoogleCallback)
	authGroup.Post("/google/mobile", limit, auth.GoogleMobile)
	authGroup.Get("/me", requireCandidate, auth.Me)
	authGroup.Post("/logout", requireCandidate, auth.Logout)
	authGroup.Post("/change-password", requireCandidate, auth.ChangePassword)
	authGroup.Delete("/account", requireCandidate, auth.DeleteAccount)

	// Candidate profile
	users := &handlers.UserHandler{DB: d.DB}
	usersGroup := router.Group("/users", requireCandidate)
	usersGroup.Get("/profile", users.GetProfile)
	usersGroup.Put("/profile", users.UpdateProfile)
	usersGroup.Post("/work-experience", users.AddWorkExperience)
	usersGroup.Put("/work-experience/:id", users.UpdateWorkExperience)
	usersGroup.Delete("/work-experience/:id", users.DeleteWorkExperience)
	usersGroup.Post("/education", users.AddEducation)
	usersGroup.Put("/education/:id", users.UpdateEducation)
	usersGroup.Delete("/education/:id", users.DeleteEducation)
	usersGroup.Post("/skills", users.AddSkills)
	usersGroup.Put("/skills/:id", users.UpdateSkill)
	usersGroup.Delete("/skills/:id", users.DeleteSkill)
	usersGroup.Post("/certifications", users.AddCertification)
	usersGroup.Put("/certifications/:id", users.UpdateCertification)
	usersGroup.Delete("/certifications/:id", users.DeleteCertification)
	usersGroup.Get("/saved-jobs", users.ListSavedJobs)
	usersGroup.Post("/saved-jobs/:jobId", users.SaveJob)
	usersGroup.Delete("/saved-jobs/:jobId", users.UnsaveJob)

	// Companies
	companies := &handlers.CompanyHandler{DB: d.DB, Tokens: d.Tokens}
	companiesGroup := router.Group("/companies")
	companiesGroup.Post("/register", limit, companies.Register)
	companiesGroup.Post("/login", limit, companies.Login)
	companiesGroup.Get("/me", requireCompany, companies.Me)
	companiesGroup.Put("/profile", requireCompany, companies.UpdateProfile)
	companiesGroup.Post("/jobs", requireCompany, companies.CreateJob)
	companiesGroup.Get("/jobs", requireCompany, companies.ListJobs)
	companiesGroup.Get("/jobs/:jobId/applications", requireCompany, companies.JobApplications)
	companiesGroup.Get("/jobs/:id", requireCompany, companies.GetJob)
	companiesGroup.Put("/jobs/:id", requireCompany, companies.UpdateJob)
	companiesGroup.Delete("/jobs/:id", requireCompany, companies.DeleteJob)
	companiesGroup.Patch("/jobs/:id/toggle-status", requireCompany, companies.ToggleJob)
	companiesGroup.Get("/dashboard", requireCompany, companies.Dashboard)
	companiesGroup.Get("/applications", requireCompany, companies.ListApplications)
	companiesGroup.Post("/applications/bulk-action", requireCompany, companies.BulkAction)
	companiesGroup.Get("/applications/:id", requireCompany, companies.GetApplication)
	companiesGroup.Patch("/applications/:id/status", requireCompany, companies.UpdateApplicationStatus)

	// Candidate applications
	applications := &handlers.ApplicationHandler{DB: d.DB}
	applicationsGroup := router.Group("/applications", requireCandidate)
	applicationsGroup.Post("/", applications.Submit)
	applicationsGroup.Get("/", applications.List)
	applicationsGroup.Get("/check/:jobId", applications.Check)
	applicationsGroup.Get("/applied-jobs/ids", applications.AppliedJobIDs)
	applicationsGroup.Get("/:id", applications.Get)
	applicationsGroup.Put("/:id/withdraw", applications.Withdraw)

	// Job catalog, public reads and administrative writes
	jobs := &handlers.JobHandler{DB: d.DB}
	jobsGroup := router.Group("/jobs")
	jobsGroup.Get("/", jobs.List)
	jobsGroup.Get("/meta/domains", jobs.Domains)
	jobsGroup.Get("/meta/locations", jobs.Locations)
	jobsGroup.Get("/meta/companies", jobs.Companies)
	jobsGroup.Get("/:id", jobs.Get)
	jobsGroup.Post("/", requireAdmin, jobs.Create)
	jobsGroup.Put("/:id", requireAdmin, jobs.Update)
	jobsGroup.Delete("/:id", requireAdmin, jobs.Delete)

	// Education taxonomy
	education := &handlers.EducationHandler{Taxonomy: d.Taxonomy}
	educationGroup := router.Group("/education")
	educationGroup.Get("/levels", education.Levels)
	educationGroup.Get("/courses", education.Courses)
	educationGroup.Get("/specializations", education.Specializations)
	educationGroup.Get("/domains", education.Domains)
	educationGroup.Get("/all", education.All)
}
