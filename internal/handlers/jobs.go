package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jobboard/internal/services"
	"github.com/localnerve/jobboard/internal/utils"
	"gorm.io/gorm"
)

// JobHandler handles the public job catalog and its administrative routes
type JobHandler struct {
	DB *gorm.DB
}

// List handles GET /api/jobs
// @Summary Search jobs
// @Description Active jobs, newest first. Location and search match case-insensitive substrings.
// @Tags Jobs
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param educationLevel query string false "Education level"
// @Param course query string false "Course"
// @Param specialization query string false "Specialization"
// @Param domain query string false "Domain"
// @Param location query string false "Location"
// @Param search query string false "Free text"
// @Success 200 {object} utils.SuccessEnvelope{data=services.JobPage}
// @Router /jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	page, err := services.ListJobs(c.UserContext(), h.DB, services.JobFilter{
		Paging:         paging(c),
		EducationLevel: c.Query("educationLevel"),
		Course:         c.Query("course"),
		Specialization: c.Query("specialization"),
		Domain:         c.Query("domain"),
		Location:       c.Query("location"),
		Search:         c.Query("search"),
	})
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, page)
}

// Get handles GET /api/jobs/:id
// @Summary Get a job
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} utils.SuccessEnvelope{data=models.Job}
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	job, err := services.GetJob(c.UserContext(), h.DB, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, job)
}

func (h *JobHandler) meta(column string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		values, err := services.JobMeta(c.UserContext(), h.DB, column)
		if err != nil {
			return err
		}
		return utils.SuccessResponse(c, fiber.StatusOK, values)
	}
}

// Domains handles GET /api/jobs/meta/domains
// @Summary Job domains
// @Tags Jobs
// @Produce json
// @Success 200 {object} utils.SuccessEnvelope{data=[]string}
// @Router /jobs/meta/domains [get]
func (h *JobHandler) Domains(c *fiber.Ctx) error { return h.meta(services.MetaDomains)(c) }

// Locations handles GET /api/jobs/meta/locations
// @Summary Job locations
// @Tags Jobs
// @Produce json
// @Success 200 {object} utils.SuccessEnvelope{data=[]string}
// @Router /jobs/meta/locations [get]
func (h *JobHandler) Locations(c *fiber.Ctx) error { return h.meta(services.MetaLocations)(c) }

// Companies handles GET /api/jobs/meta/companies
// @Summary Hiring companies
// @Tags Jobs
// @Produce json
// @Success 200 {object} utils.SuccessEnvelope{data=[]string}
// @Router /jobs/meta/companies [get]
func (h *JobHandler) Companies(c *fiber.Ctx) error { return h.meta(services.MetaCompanies)(c) }

// Create handles POST /api/jobs
// @Summary Post an administrative job
// @Tags Jobs
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param body body services.JobInput true "Job"
// @Success 201 {object} utils.SuccessEnvelope{data=models.Job}
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 403 {object} utils.ErrorEnvelope
// @Router /jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var in services.JobInput
	if err := bind(c, &in); err != nil {
		return err
	}

	job, err := services.CreateJob(c.UserContext(), h.DB, nil, &in)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusCreated, job, "Job posted successfully")
}

// Update handles PUT /api/jobs/:id
// @Summary Update any job
// @Tags Jobs
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Job ID"
// @Param body body services.JobInput true "Job"
// @Success 200 {object} utils.SuccessEnvelope{data=models.Job}
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 403 {object} utils.ErrorEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /jobs/{id} [put]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	var in services.JobInput
	if err := bind(c, &in); err != nil {
		return err
	}

	job, err := services.UpdateJob(c.UserContext(), h.DB, c.Params("id"), "", &in)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, job, "Job updated successfully")
}

// Delete handles DELETE /api/jobs/:id
// @Summary Delete any job
// @Tags Jobs
// @Produce json
// @Security CookieAuth
// @Param id path string true "Job ID"
// @Success 200 {object} utils.SuccessEnvelope
// @Failure 403 {object} utils.ErrorEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	if err := services.DeleteJob(c.UserContext(), h.DB, c.Params("id"), ""); err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, nil, "Job deleted successfully")
}
