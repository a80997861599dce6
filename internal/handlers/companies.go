// companies.go
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

package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jobboard/internal/middleware"
	"github.com/localnerve/jobboard/internal/models"
	"github.com/localnerve/jobboard/internal/services"
	"github.com/localnerve/jobboard/internal/utils"
	"gorm.io/gorm"
)

// CompanyHandler handles company accounts, their jobs and the applications to them
type CompanyHandler struct {
	DB     *gorm.DB
	Tokens *services.TokenManager
}

// CompanySession is returned by company registration and login
type CompanySession struct {
	Company *models.Company  `json:"company"`
	Tokens  *services.Tokens `json:"tokens"`
}

// StatusUpdateInput moves one application to a new status
type StatusUpdateInput struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty" validate:"max=500"`
}

// BulkActionInput applies one status to many applications
type BulkActionInput struct {
	ApplicationIDs []string `json:"applicationIds"`
	Action         string   `json:"action"`
	Notes          string   `json:"notes,omitempty" validate:"max=500"`
}

func (h *CompanyHandler) session(company *models.Company) (*CompanySession, error) {
	tokens, err := h.Tokens.Issue(services.KindCompany, company.ID, company.Email, "")
	if err != nil {
		return nil, err
	}
	return &CompanySession{Company: company, Tokens: tokens}, nil
}

// Register handles POST /api/companies/register
// @Summary Register a company
// @Tags Companies
// @Accept json
// @Produce json
// @Param body body services.CompanyRegisterInput true "Registration"
// @Success 201 {object} utils.SuccessEnvelope{data=CompanySession}
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 409 {object} utils.ErrorEnvelope
// @Router /companies/register [post]
func (h *CompanyHandler) Register(c *fiber.Ctx) error {
	var in services.CompanyRegisterInput
	if err := bind(c, &in); err != nil {
		return err
	}

	company, err := services.RegisterCompany(c.UserContext(), h.DB, &in)
	if err != nil {
		return err
	}
	session, err := h.session(company)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusCreated, session, "Company registered successfully")
}

// Login handles POST /api/companies/login
// @Summary Company login
// @Tags Companies
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Credentials"
// @Success 200 {object} utils.SuccessEnvelope{data=CompanySession}
// @Failure 401 {object} utils.ErrorEnvelope
// @Router /companies/login [post]
func (h *CompanyHandler) Login(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := bind(c, &in); err != nil {
		return err
	}

	company, err := services.LoginCompany(c.UserContext(), h.DB, &in)
	if err != nil {
		return err
	}
	session, err := h.session(company)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, session, "Login successful")
}

// Me handles GET /api/companies/me
// @Summary Current company
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessEnvelope{data=map[string]models.Company}
// @Router /companies/me [get]
func (h *CompanyHandler) Me(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"company": middleware.CurrentCompany(c)})
}

// UpdateProfile handles PUT /api/companies/profile
// @Summary Update company profile
// @Tags Companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CompanyProfileUpdate true "Profile fields"
// @Success 200 {object} utils.SuccessEnvelope{data=map[string]models.Company}
// @Failure 400 {object} utils.ErrorEnvelope
// @Router /companies/profile [put]
func (h *CompanyHandler) UpdateProfile(c *fiber.Ctx) error {
	var in services.CompanyProfileUpdate
	if err := bind(c, &in); err != nil {
		return err
	}

	company, err := services.UpdateCompanyProfile(c.UserContext(), h.DB, middleware.CurrentCompany(c).ID, &in)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, fiber.Map{"company": company}, "Company profile updated successfully")
}

// CreateJob handles POST /api/companies/jobs
// @Summary Post a job
// @Tags Companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.JobInput true "Job"
// @Success 201 {object} utils.SuccessEnvelope{data=map[string]models.Job}
// @Failure 400 {object} utils.ErrorEnvelope
// @Router /companies/jobs [post]
func (h *CompanyHandler) CreateJob(c *fiber.Ctx) error {
	var in services.JobInput
	if err := bind(c, &in); err != nil {
		return err
	}

	job, err := services.CreateJob(c.UserContext(), h.DB, middleware.CurrentCompany(c), &in)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusCreated, fiber.Map{"job": job}, "Job posted successfully")
}

// ListJobs handles GET /api/companies/jobs
// @Summary List my jobs
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "all, active or inactive"
// @Success 200 {object} utils.SuccessEnvelope{data=services.JobPage}
// @Router /companies/jobs [get]
func (h *CompanyHandler) ListJobs(c *fiber.Ctx) error {
	page, err := services.ListCompanyJobs(c.UserContext(), h.DB, middleware.CurrentCompany(c).ID, services.CompanyJobFilter{
		Paging: paging(c),
		Status: c.Query("status", "all"),
	})
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, page)
}

// GetJob handles GET /api/companies/jobs/:id
// @Summary Get one of my jobs
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} utils.SuccessEnvelope{data=map[string]models.Job}
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /companies/jobs/{id} [get]
func (h *CompanyHandler) GetJob(c *fiber.Ctx) error {
	job, err := services.GetCompanyJob(c.UserContext(), h.DB, c.Params("id"), middleware.CurrentCompany(c).ID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"job": job})
}

// UpdateJob handles PUT /api/companies/jobs/:id
// @Summary Update one of my jobs
// @Tags Companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param body body services.JobInput true "Job"
// @Success 200 {object} utils.SuccessEnvelope{data=map[string]models.Job}
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /companies/jobs/{id} [put]
func (h *CompanyHandler) UpdateJob(c *fiber.Ctx) error {
	var in services.JobInput
	if err := bind(c, &in); err != nil {
		return err
	}

	job, err := services.UpdateJob(c.UserContext(), h.DB, c.Params("id"), middleware.CurrentCompany(c).ID, &in)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, fiber.Map{"job": job}, "Job updated successfully")
}

// DeleteJob handles DELETE /api/companies/jobs/:id
// @Summary Delete one of my jobs
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} utils.SuccessEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /companies/jobs/{id} [delete]
func (h *CompanyHandler) DeleteJob(c *fiber.Ctx) error {
	if err := services.DeleteJob(c.UserContext(), h.DB, c.Params("id"), middleware.CurrentCompany(c).ID); err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, nil, "Job deleted successfully")
}

// ToggleJob handles PATCH /api/companies/jobs/:id/toggle-status
// @Summary Activate or deactivate one of my jobs
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} utils.SuccessEnvelope{data=map[string]models.Job}
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /companies/jobs/{id}/toggle-status [patch]
func (h *CompanyHandler) ToggleJob(c *fiber.Ctx) error {
	job, err := services.ToggleJob(c.UserContext(), h.DB, c.Params("id"), middleware.CurrentCompany(c).ID)
	if err != nil {
		return err
	}
	state := "deactivated"
	if job.IsActive {
		state = "activated"
	}
	return utils.MessageResponse(c, fiber.StatusOK, fiber.Map{"job": job}, fmt.Sprintf("Job %s successfully", state))
}

// JobApplications handles GET /api/companies/jobs/:jobId/applications
// @Summary Applications to one of my jobs
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "Job ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter or all"
// @Success 200 {object} utils.SuccessEnvelope{data=services.JobApplicationsPage}
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /companies/jobs/{jobId}/applications [get]
func (h *CompanyHandler) JobApplications(c *fiber.Ctx) error {
	page, err := services.ListJobApplications(c.UserContext(), h.DB, middleware.CurrentCompany(c).ID, c.Params("jobId"), applicationFilter(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, page)
}

// Dashboard handles GET /api/companies/dashboard
// @Summary Company dashboard
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessEnvelope{data=services.Dashboard}
// @Router /companies/dashboard [get]
func (h *CompanyHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := services.CompanyDashboard(c.UserContext(), h.DB, middleware.CurrentCompany(c).ID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, dashboard)
}

// ListApplications handles GET /api/companies/applications
// @Summary Applications to my jobs
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter or all"
// @Param jobId query string false "Restrict to one job"
// @Success 200 {object} utils.SuccessEnvelope{data=services.ApplicationPage}
// @Router /companies/applications [get]
func (h *CompanyHandler) ListApplications(c *fiber.Ctx) error {
	page, err := services.ListCompanyApplications(c.UserContext(), h.DB, middleware.CurrentCompany(c).ID, applicationFilter(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, page)
}

// GetApplication handles GET /api/companies/applications/:id
// @Summary Get an application to one of my jobs
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} utils.SuccessEnvelope
// @Failure 403 {object} utils.ErrorEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /companies/applications/{id} [get]
func (h *CompanyHandler) GetApplication(c *fiber.Ctx) error {
	app, err := services.GetCompanyApplication(c.UserContext(), h.DB, c.Params("id"), middleware.CurrentCompany(c).ID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"application": app})
}

// UpdateApplicationStatus handles PATCH /api/companies/applications/:id/status
// @Summary Change an application's status
// @Description Every call appends one entry to the application's history, even when the status is unchanged
// @Tags Companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param body body StatusUpdateInput true "Status and notes"
// @Success 200 {object} utils.SuccessEnvelope
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 403 {object} utils.ErrorEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /companies/applications/{id}/status [patch]
func (h *CompanyHandler) UpdateApplicationStatus(c *fiber.Ctx) error {
	var in StatusUpdateInput
	if err := bind(c, &in); err != nil {
		return err
	}

	app, err := services.TransitionStatus(c.UserContext(), h.DB, c.Params("id"), middleware.CurrentCompany(c).ID, in.Status, in.Notes)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, fiber.Map{"application": app}, "Application status updated to "+in.Status)
}

// BulkAction handles POST /api/companies/applications/bulk-action
// @Summary Change the status of many applications
// @Description Applies reviewed, shortlisted or rejected to each owned application. Items are committed one by one.
// @Tags Companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BulkActionInput true "Applications and action"
// @Success 200 {object} utils.SuccessEnvelope{data=services.BulkResult}
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 403 {object} utils.ErrorEnvelope
// @Router /companies/applications/bulk-action [post]
func (h *CompanyHandler) BulkAction(c *fiber.Ctx) error {
	var in BulkActionInput
	if err := bind(c, &in); err != nil {
		return err
	}

	result, err := services.BulkTransition(c.UserContext(), h.DB, middleware.CurrentCompany(c).ID, in.ApplicationIDs, in.Action, in.Notes)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, result,
		fmt.Sprintf("%d applications updated to %s", result.UpdatedCount, in.Action))
}
