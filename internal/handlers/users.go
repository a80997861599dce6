package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jobboard/internal/middleware"
	"github.com/localnerve/jobboard/internal/models"
	"github.com/localnerve/jobboard/internal/services"
	"github.com/localnerve/jobboard/internal/types"
	"github.com/localnerve/jobboard/internal/utils"
	"gorm.io/gorm"
)

// UserHandler handles the candidate profile routes
type UserHandler struct {
	DB *gorm.DB
}

// GetProfile handles GET /api/users/profile
// @Summary Get profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessEnvelope{data=map[string]models.Candidate}
// @Failure 401 {object} utils.ErrorEnvelope
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"user": middleware.CurrentCandidate(c)})
}

// UpdateProfile handles PUT /api/users/profile
// @Summary Update profile
// @Description Update name and phone, merging location, profile and preferences into the stored values
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ProfileUpdate true "Profile fields"
// @Success 200 {object} utils.SuccessEnvelope{data=map[string]models.Candidate}
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 401 {object} utils.ErrorEnvelope
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var in services.ProfileUpdate
	if err := bind(c, &in); err != nil {
		return err
	}

	candidate, err := services.UpdateProfile(c.UserContext(), h.DB, middleware.CurrentCandidate(c).ID, &in)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, fiber.Map{"user": candidate}, "Profile updated successfully")
}

// section serves the add, update and delete routes of one profile section
type section[T models.ProfileEntry] struct {
	db      *gorm.DB
	section services.ProfileSection[T]
	key     string
	listKey string
	label   string
}

func (s section[T]) add(c *fiber.Ctx) error {
	var entries types.FlexList[T]
	if err := parseBody(c, &entries); err != nil {
		return err
	}
	if len(entries) == 0 {
		return types.NewValidationError(map[string][]string{s.listKey: {s.label + " is required"}})
	}

	added, err := s.section.Add(c.UserContext(), s.db, middleware.CurrentCandidate(c).ID, entries...)
	if err != nil {
		return err
	}
	if len(added) == 1 {
		return utils.MessageResponse(c, fiber.StatusCreated, fiber.Map{s.key: added[0]}, s.label+" added successfully")
	}
	return utils.MessageResponse(c, fiber.StatusCreated, fiber.Map{s.listKey: added}, s.label+" added successfully")
}

func (s section[T]) update(c *fiber.Ctx) error {
	patch := json.RawMessage(c.Body())
	if !json.Valid(patch) {
		return errInvalidBody
	}

	entry, err := s.section.Update(c.UserContext(), s.db, middleware.CurrentCandidate(c).ID, c.Params("id"), patch)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, fiber.Map{s.key: entry}, s.label+" updated successfully")
}

func (s section[T]) delete(c *fiber.Ctx) error {
	if err := s.section.Delete(c.UserContext(), s.db, middleware.CurrentCandidate(c).ID, c.Params("id")); err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, nil, s.label+" deleted successfully")
}

func (h *UserHandler) workExperience() section[models.WorkExperience] {
	return section[models.WorkExperience]{h.DB, services.WorkExperienceSection, "workExperience", "workExperience", "Work experience"}
}

func (h *UserHandler) education() section[models.Education] {
	return section[models.Education]{h.DB, services.EducationSection, "education", "education", "Education"}
}

func (h *UserHandler) skills() section[models.Skill] {
	return section[models.Skill]{h.DB, services.SkillSection, "skill", "skills", "Skill"}
}

func (h *UserHandler) certifications() section[models.Certification] {
	return section[models.Certification]{h.DB, services.CertificationSection, "certification", "certifications", "Certification"}
}

// AddWorkExperience handles POST /api/users/work-experience
// @Summary Add work experience
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.WorkExperience true "Work experience"
// @Success 201 {object} utils.SuccessEnvelope
// @Failure 400 {object} utils.ErrorEnvelope
// @Router /users/work-experience [post]
func (h *UserHandler) AddWorkExperience(c *fiber.Ctx) error { return h.workExperience().add(c) }

// UpdateWorkExperience handles PUT /api/users/work-experience/:id
// @Summary Update work experience
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param body body models.WorkExperience true "Fields to change"
// @Success 200 {object} utils.SuccessEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /users/work-experience/{id} [put]
func (h *UserHandler) UpdateWorkExperience(c *fiber.Ctx) error { return h.workExperience().update(c) }

// DeleteWorkExperience handles DELETE /api/users/work-experience/:id
// @Summary Delete work experience
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} utils.SuccessEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /users/work-experience/{id} [delete]
func (h *UserHandler) DeleteWorkExperience(c *fiber.Ctx) error { return h.workExperience().delete(c) }

// AddEducation handles POST /api/users/education
// @Summary Add education
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.Education true "Education"
// @Success 201 {object} utils.SuccessEnvelope
// @Failure 400 {object} utils.ErrorEnvelope
// @Router /users/education [post]
func (h *UserHandler) AddEducation(c *fiber.Ctx) error { return h.education().add(c) }

// UpdateEducation handles PUT /api/users/education/:id
// @Summary Update education
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param body body models.Education true "Fields to change"
// @Success 200 {object} utils.SuccessEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /users/education/{id} [put]
func (h *UserHandler) UpdateEducation(c *fiber.Ctx) error { return h.education().update(c) }

// DeleteEducation handles DELETE /api/users/education/:id
// @Summary Delete education
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} utils.SuccessEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /users/education/{id} [delete]
func (h *UserHandler) DeleteEducation(c *fiber.Ctx) error { return h.education().delete(c) }

// AddSkills handles POST /api/users/skills, accepting one skill or an array
// @Summary Add skills
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body []models.Skill true "One skill or a list"
// @Success 201 {object} utils.SuccessEnvelope
// @Failure 400 {object} utils.ErrorEnvelope
// @Router /users/skills [post]
func (h *UserHandler) AddSkills(c *fiber.Ctx) error { return h.skills().add(c) }

// UpdateSkill handles PUT /api/users/skills/:id
// @Summary Update a skill
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param body body models.Skill true "Fields to change"
// @Success 200 {object} utils.SuccessEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /users/skills/{id} [put]
func (h *UserHandler) UpdateSkill(c *fiber.Ctx) error { return h.skills().update(c) }

// DeleteSkill handles DELETE /api/users/skills/:id
// @Summary Delete a skill
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} utils.SuccessEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /users/skills/{id} [delete]
func (h *UserHandler) DeleteSkill(c *fiber.Ctx) error { return h.skills().delete(c) }

// AddCertification handles POST /api/users/certifications
// @Summary Add a certification
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.Certification true "Certification"
// @Success 201 {object} utils.SuccessEnvelope
// @Failure 400 {object} utils.ErrorEnvelope
// @Router /users/certifications [post]
func (h *UserHandler) AddCertification(c *fiber.Ctx) error { return h.certifications().add(c) }

// UpdateCertification handles PUT /api/users/certifications/:id
// @Summary Update a certification
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param body body models.Certification true "Fields to change"
// @Success 200 {object} utils.SuccessEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /users/certifications/{id} [put]
func (h *UserHandler) UpdateCertification(c *fiber.Ctx) error { return h.certifications().update(c) }

// DeleteCertification handles DELETE /api/users/certifications/:id
// @Summary Delete a certification
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} utils.SuccessEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /users/certifications/{id} [delete]
func (h *UserHandler) DeleteCertification(c *fiber.Ctx) error { return h.certifications().delete(c) }

// ListSavedJobs handles GET /api/users/saved-jobs
// @Summary List saved jobs
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessEnvelope{data=map[string][]models.SavedJob}
// @Router /users/saved-jobs [get]
func (h *UserHandler) ListSavedJobs(c *fiber.Ctx) error {
	saved, err := services.ListSavedJobs(c.UserContext(), h.DB, middleware.CurrentCandidate(c).ID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"savedJobs": saved})
}

// SaveJob handles POST /api/users/saved-jobs/:jobId
// @Summary Save a job
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "Job ID"
// @Success 201 {object} utils.SuccessEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Failure 409 {object} utils.ErrorEnvelope
// @Router /users/saved-jobs/{jobId} [post]
func (h *UserHandler) SaveJob(c *fiber.Ctx) error {
	saved, err := services.SaveJob(c.UserContext(), h.DB, middleware.CurrentCandidate(c).ID, c.Params("jobId"))
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusCreated, fiber.Map{"savedJob": saved}, "Job saved successfully")
}

// UnsaveJob handles DELETE /api/users/saved-jobs/:jobId
// @Summary Remove a saved job
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "Job ID"
// @Success 200 {object} utils.SuccessEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /users/saved-jobs/{jobId} [delete]
func (h *UserHandler) UnsaveJob(c *fiber.Ctx) error {
	if err := services.UnsaveJob(c.UserContext(), h.DB, middleware.CurrentCandidate(c).ID, c.Params("jobId")); err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, nil, "Job removed from saved jobs")
}
