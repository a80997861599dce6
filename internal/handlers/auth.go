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

package handlers

import (
	"log"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/localnerve/jobboard/internal/config"
	"github.com/localnerve/jobboard/internal/middleware"
	"github.com/localnerve/jobboard/internal/models"
	"github.com/localnerve/jobboard/internal/services"
	"github.com/localnerve/jobboard/internal/types"
	"github.com/localnerve/jobboard/internal/utils"
	"gorm.io/gorm"
)

const oauthStateCookie = "oauth_state"

var errGoogleDisabled = types.NewError(fiber.StatusNotFound, types.CodeNotFound, "Google sign-in is not configured")

// AuthHandler handles candidate authentication routes
type AuthHandler struct {
	DB     *gorm.DB
	Tokens *services.TokenManager
	Google *services.GoogleAuth
	Config *config.Config
}

// CandidateSession is returned by every candidate sign-in
type CandidateSession struct {
	User   *models.Candidate `json:"user"`
	Tokens *services.Tokens  `json:"tokens"`
}

// MobileGoogleInput is the mobile Google sign-in payload
type MobileGoogleInput struct {
	GoogleToken string                   `json:"googleToken"`
	UserInfo    *services.GoogleIdentity `json:"userInfo"`
	FirebaseUID string                   `json:"firebaseUid,omitempty"`
}

func (h *AuthHandler) session(candidate *models.Candidate) (*CandidateSession, error) {
	tokens, err := h.Tokens.Issue(services.KindCandidate, candidate.ID, candidate.Email, candidate.LoginType)
	if err != nil {
		return nil, err
	}
	return &CandidateSession{User: candidate, Tokens: tokens}, nil
}

// Register handles POST /api/auth/register
// @Summary Register a candidate
// @Description Create an email/password candidate account and sign it in
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration"
// @Success 201 {object} utils.SuccessEnvelope{data=CandidateSession}
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 409 {object} utils.ErrorEnvelope
// @Failure 429 {object} utils.ErrorEnvelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := bind(c, &in); err != nil {
		return err
	}

	candidate, err := services.RegisterCandidate(c.UserContext(), h.DB, &in)
	if err != nil {
		return err
	}
	session, err := h.session(candidate)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusCreated, session, "User registered successfully")
}

// Login handles POST /api/auth/login
// @Summary Candidate login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Credentials"
// @Success 200 {object} utils.SuccessEnvelope{data=CandidateSession}
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 401 {object} utils.ErrorEnvelope
// @Failure 429 {object} utils.ErrorEnvelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := bind(c, &in); err != nil {
		return err
	}

	candidate, err := services.LoginCandidate(c.UserContext(), h.DB, &in)
	if err != nil {
		return err
	}
	session, err := h.session(candidate)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, session, "Login successful")
}

// GoogleRedirect handles GET /api/auth/google
// @Summary Start Google sign-in
// @Description Redirect to the Google consent page
// @Tags Auth
// @Success 302
// @Failure 404 {object} utils.ErrorEnvelope
// @Router /auth/google [get]
func (h *AuthHandler) GoogleRedirect(c *fiber.Ctx) error {
	if !h.Google.WebEnabled() {
		return errGoogleDisabled
	}

	state := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/auth/google",
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(h.Google.AuthCodeURL(state), fiber.StatusFound)
}

// GoogleCallback handles GET /api/auth/google/callback
// @Summary Finish Google sign-in
// @Description Exchange the authorization code and redirect to the frontend with an access token
// @Tags Auth
// @Param code query string true "Authorization code"
// @Param state query string true "OAuth state"
// @Success 302
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	if !h.Google.WebEnabled() {
		return errGoogleDisabled
	}

	fail := func(reason string, err error) error {
		log.Printf("Google callback failed (%s): %v", reason, err)
		return c.Redirect(h.Config.FrontendURL+"/auth/callback?success=false&error=authentication_failed", fiber.StatusFound)
	}

	state := c.Cookies(oauthStateCookie)
	c.ClearCookie(oauthStateCookie)
	if state == "" || state != c.Query("state") {
		return fail("state", errInvalidBody)
	}

	identity, err := h.Google.Exchange(c.UserContext(), c.Query("code"))
	if err != nil {
		return fail("exchange", err)
	}
	candidate, err := services.ProvisionGoogleCandidate(c.UserContext(), h.DB, identity)
	if err != nil {
		return fail("provision", err)
	}
	session, err := h.session(candidate)
	if err != nil {
		return fail("token", err)
	}

	q := url.Values{}
	q.Set("token", session.Tokens.AccessToken)
	q.Set("success", "true")
	return c.Redirect(h.Config.FrontendURL+"/auth/callback?"+q.Encode(), fiber.StatusFound)
}

// GoogleMobile handles POST /api/auth/google/mobile
// @Summary Google sign-in for mobile clients
// @Description Sign in with a Google ID token obtained on the device. The token is verified when a Google client id is configured.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body MobileGoogleInput true "Google token and user info"
// @Success 200 {object} utils.SuccessEnvelope{data=CandidateSession}
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 401 {object} utils.ErrorEnvelope
// @Failure 409 {object} utils.ErrorEnvelope
// @Router /auth/google/mobile [post]
func (h *AuthHandler) GoogleMobile(c *fiber.Ctx) error {
	var in MobileGoogleInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if in.GoogleToken == "" || in.UserInfo == nil {
		return types.ErrMissingData
	}
	in.UserInfo.FirebaseUID = in.FirebaseUID

	identity := in.UserInfo
	if h.Google != nil {
		verified, err := h.Google.VerifyIDToken(c.UserContext(), in.GoogleToken, in.UserInfo)
		if err != nil {
			return err
		}
		identity = verified
	}

	candidate, err := services.ProvisionGoogleCandidate(c.UserContext(), h.DB, identity)
	if err != nil {
		return err
	}
	session, err := h.session(candidate)
	if err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, session, "Google authentication successful")
}

// Me handles GET /api/auth/me
// @Summary Current candidate
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessEnvelope{data=map[string]models.Candidate}
// @Failure 401 {object} utils.ErrorEnvelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"user": middleware.CurrentCandidate(c)})
}

// Logout handles POST /api/auth/logout. Tokens are stateless, the client discards its own.
// @Summary Candidate logout
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessEnvelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return utils.MessageResponse(c, fiber.StatusOK, nil, "Logout successful")
}

// ChangePassword handles POST /api/auth/change-password
// @Summary Change password
// @Description Replace the password of an email account
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ChangePasswordInput true "Passwords"
// @Success 200 {object} utils.SuccessEnvelope
// @Failure 400 {object} utils.ErrorEnvelope
// @Failure 401 {object} utils.ErrorEnvelope
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in services.ChangePasswordInput
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := services.ChangePassword(c.UserContext(), h.DB, middleware.CurrentCandidate(c).ID, &in); err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, nil, "Password changed successfully")
}

// DeleteAccount handles DELETE /api/auth/account
// @Summary Delete account
// @Description Deactivate the candidate account and release its email
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessEnvelope
// @Failure 401 {object} utils.ErrorEnvelope
// @Router /auth/account [delete]
func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	if err := services.DeactivateCandidate(c.UserContext(), h.DB, middleware.CurrentCandidate(c).ID); err != nil {
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, nil, "Account deleted successfully")
}
