// auth.go
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

package middleware

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jobboard/internal/config"
	"github.com/localnerve/jobboard/internal/models"
	"github.com/localnerve/jobboard/internal/services"
	"github.com/localnerve/jobboard/internal/types"
	"gorm.io/gorm"
)

// Locals keys holding the authenticated actor
const (
	LocalCandidate = "candidate"
	LocalCompany   = "company"
	LocalAdmin     = "admin"
)

var errUnknownActor = types.NewError(fiber.StatusUnauthorized, types.CodeUnauthorized, "Invalid token or user not found")

// RequireCandidate authenticates a candidate bearer token and stores the candidate in Locals
func RequireCandidate(tm *services.TokenManager, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := bearerClaims(c, tm, services.KindCandidate)
		if err != nil {
			return err
		}

		candidate, err := services.GetCandidate(c.UserContext(), db, claims.Subject)
		if err != nil {
			return actorError(err, types.ErrUserNotFound)
		}
		if !candidate.IsActive {
			return types.ErrAccountDeactivated
		}

		c.Locals(LocalCandidate, candidate)
		return c.Next()
	}
}

// RequireCompany authenticates a company bearer token and stores the company in Locals
func RequireCompany(tm *services.TokenManager, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := bearerClaims(c, tm, services.KindCompany)
		if err != nil {
			return err
		}

		company, err := services.GetCompany(c.UserContext(), db, claims.Subject)
		if err != nil {
			return actorError(err, types.ErrCompanyNotFound)
		}
		if !company.IsActive {
			return types.ErrAccountDeactivated
		}

		c.Locals(LocalCompany, company)
		return c.Next()
	}
}

// bearerClaims verifies the Authorization header and checks the token kind
func bearerClaims(c *fiber.Ctx, tm *services.TokenManager, kind string) (*services.Claims, error) {
	header := c.Get(fiber.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return nil, types.ErrUnauthorized
	}

	claims, err := tm.Verify(strings.TrimSpace(token))
	if err != nil {
		return nil, err
	}
	if claims.Kind != kind {
		return nil, errUnknownActor
	}
	return claims, nil
}

func actorError(err, notFound error) error {
	if errors.Is(err, notFound) {
		return errUnknownActor
	}
	return err
}

// CurrentCandidate returns the candidate stored by RequireCandidate
func CurrentCandidate(c *fiber.Ctx) *models.Candidate {
	candidate, _ := c.Locals(LocalCandidate).(*models.Candidate)
	return candidate
}

// CurrentCompany returns the company stored by RequireCompany
func CurrentCompany(c *fiber.Ctx) *models.Company {
	company, _ := c.Locals(LocalCompany).(*models.Company)
	return company
}

// AuthAdmin validates that the request carries an Authorizer session with the admin role.
// The Authorizer client is created on the first request that needs it.
func AuthAdmin(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !services.IsAuthorizerInitialized() {
			if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname()); err != nil {
				log.Printf("Authorizer unavailable: %v", err)
				return adminRequired("Administrative sessions are unavailable")
			}
		}

		session := c.Cookies("cookie_session")
		if session == "" {
			return adminRequired("Authorizer cookie \"cookie_session\" not found")
		}

		user, err := services.ValidateSession(session, []string{services.AdminRole})
		if err != nil {
			return adminRequired(fmt.Sprintf("Invalid session: %v", err))
		}

		c.Locals(LocalAdmin, user)
		return c.Next()
	}
}

func adminRequired(message string) error {
	return types.NewError(fiber.StatusForbidden, types.CodeAdminRequired, message)
}
