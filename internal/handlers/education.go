package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jobboard/internal/services"
	"github.com/localnerve/jobboard/internal/utils"
)

// EducationHandler serves the static education taxonomy
type EducationHandler struct {
	Taxonomy *services.Taxonomy
}

// Levels handles GET /api/education/levels
// @Summary Education levels
// @Tags Education
// @Produce json
// @Success 200 {object} utils.SuccessEnvelope{data=[]string}
// @Router /education/levels [get]
func (h *EducationHandler) Levels(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, h.Taxonomy.EducationLevels)
}

// Courses handles GET /api/education/courses?level=
// @Summary Courses of a level
// @Tags Education
// @Produce json
// @Param level query string true "Education level"
// @Success 200 {object} utils.SuccessEnvelope{data=[]string}
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /education/courses [get]
func (h *EducationHandler) Courses(c *fiber.Ctx) error {
	courses, err := h.Taxonomy.Courses(c.Query("level"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, courses)
}

// Specializations handles GET /api/education/specializations?course=
// @Summary Specializations of a course
// @Tags Education
// @Produce json
// @Param course query string true "Course"
// @Success 200 {object} utils.SuccessEnvelope{data=[]string}
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /education/specializations [get]
func (h *EducationHandler) Specializations(c *fiber.Ctx) error {
	specs, err := h.Taxonomy.Specializations(c.Query("course"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, specs)
}

// Domains handles GET /api/education/domains?specialization=
// @Summary Job domains of a specialization
// @Tags Education
// @Produce json
// @Param specialization query string true "Specialization"
// @Success 200 {object} utils.SuccessEnvelope{data=[]string}
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /education/domains [get]
func (h *EducationHandler) Domains(c *fiber.Ctx) error {
	domains, err := h.Taxonomy.Domains(c.Query("specialization"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, domains)
}

// All handles GET /api/education/all
// @Summary Whole taxonomy
// @Tags Education
// @Produce json
// @Success 200 {object} utils.SuccessEnvelope{data=services.Taxonomy}
// @Router /education/all [get]
func (h *EducationHandler) All(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, h.Taxonomy)
}
