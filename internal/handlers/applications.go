// applications.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jobboard/internal/middleware"
	"github.com/localnerve/jobboard/internal/services"
	"github.com/localnerve/jobboard/internal/types"
	"github.com/localnerve/jobboard/internal/utils"
	"github.com/localnerve/jobboard/internal/validation"
	"gorm.io/gorm"
)

// ApplicationHandler handles the candidate application routes
type ApplicationHandler struct {
	DB *gorm.DB
}

// applicationFilter reads the listing query parameters
func applicationFilter(c *fiber.Ctx) services.ApplicationFilter {
	return services.ApplicationFilter{
		Paging:    paging(c),
		Status:    c.Query("status"),
		JobID:     c.Query("jobId"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
}

// Submit handles POST /api/applications
// @Summary Apply to a job
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SubmitInput true "Application"
// @Success 201 {object} utils.SuccessEnvelope
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Failure 409 {object} utils.ErrorEnvelope
// @Router /applications [post]
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	var in services.SubmitInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if in.JobID == "" || in.ContactInfo == nil || in.Resume == nil {
		return types.ErrMissingRequired
	}
	if err := validation.Struct(&in); err != nil {
		return err
	}

	app, err := services.SubmitApplication(c.UserContext(), h.DB, middleware.CurrentCandidate(c).ID, &in)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusCreated, fiber.Map{"application": app}, "Job application submitted successfully")
}

// List handles GET /api/applications
// @Summary List my applications
// @Description Applications to active jobs, newest first unless sortBy (appliedAt, lastUpdated, status) is given
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter or all"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} utils.SuccessEnvelope{data=services.ApplicationPage}
// @Router /applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	page, err := services.ListCandidateApplications(c.UserContext(), h.DB, middleware.CurrentCandidate(c).ID, applicationFilter(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, page)
}

// Get handles GET /api/applications/:id
// @Summary Get one of my applications
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} utils.SuccessEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /applications/{id} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	app, err := services.GetCandidateApplication(c.UserContext(), h.DB, c.Params("id"), middleware.CurrentCandidate(c).ID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"application": app})
}

// Withdraw handles PUT /api/applications/:id/withdraw
// @Summary Withdraw an application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} utils.SuccessEnvelope
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /applications/{id}/withdraw [put]
func (h *ApplicationHandler) Withdraw(c *fiber.Ctx) error {
	app, err := services.WithdrawApplication(c.UserContext(), h.DB, c.Params("id"), middleware.CurrentCandidate(c).ID)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, fiber.Map{"application": app}, "Job application withdrawn successfully")
}

// Check handles GET /api/applications/check/:jobId
// @Summary Have I applied
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "Job ID"
// @Success 200 {object} utils.SuccessEnvelope{data=map[string]bool}
// @Router /applications/check/{jobId} [get]
func (h *ApplicationHandler) Check(c *fiber.Ctx) error {
	applied, err := services.HasApplied(c.UserContext(), h.DB, middleware.CurrentCandidate(c).ID, c.Params("jobId"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"hasApplied": applied})
}

// AppliedJobIDs handles GET /api/applications/applied-jobs/ids
// @Summary Ids of jobs I applied to
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessEnvelope{data=map[string][]string}
// @Router /applications/applied-jobs/ids [get]
func (h *ApplicationHandler) AppliedJobIDs(c *fiber.Ctx) error {
	ids, err := services.AppliedJobIDs(c.UserContext(), h.DB, middleware.CurrentCandidate(c).ID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"appliedJobIds": ids})
}
