// common.go
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
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jobboard/internal/services"
	"github.com/localnerve/jobboard/internal/types"
	"github.com/localnerve/jobboard/internal/utils"
	"github.com/localnerve/jobboard/internal/validation"
)

var errInvalidBody = types.NewError(fiber.StatusBadRequest, types.CodeInvalidData, "Invalid request body")

// ErrorHandler folds every error returned by a handler or middleware into the error envelope.
// Only CustomError messages reach the client; anything else is logged and reported as SERVER_ERROR.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ce *types.CustomError
	if errors.As(err, &ce) {
		return utils.ErrorResponse(c, ce.Code, ce.Type, ce.Message, ce.Details)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch {
		case fe.Code == fiber.StatusNotFound || fe.Code == fiber.StatusMethodNotAllowed:
			return utils.ErrorResponse(c, fiber.StatusNotFound, types.CodeNotFound, "Route not found", nil)
		case fe.Code == fiber.StatusTooManyRequests:
			return utils.ErrorResponse(c, fe.Code, types.CodeTooManyRequests, fe.Message, nil)
		case fe.Code < fiber.StatusInternalServerError:
			return utils.ErrorResponse(c, fe.Code, types.CodeInvalidData, fe.Message, nil)
		}
	}

	log.Printf("%s %s failed: %v", c.Method(), c.OriginalURL(), err)
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, types.CodeServerError, "Internal server error", nil)
}

// NotFound answers requests no route matched
func NotFound(c *fiber.Ctx) error {
	return utils.ErrorResponse(c, fiber.StatusNotFound, types.CodeNotFound, "Route not found", nil)
}

// parseBody decodes the JSON body into dst
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return errInvalidBody
	}
	return nil
}

// bind decodes and validates the JSON body into dst
func bind(c *fiber.Ctx, dst interface{}) error {
	if err := parseBody(c, dst); err != nil {
		return err
	}
	return validation.Struct(dst)
}

// queryInt reads a positive integer query parameter, falling back to def
func queryInt(c *fiber.Ctx, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return def
	}
	return v
}

// paging reads the page and limit query parameters
func paging(c *fiber.Ctx) services.Paging {
	return services.Paging{
		Page:  queryInt(c, "page", services.DefaultPage),
		Limit: queryInt(c, "limit", services.DefaultLimit),
	}.Normalize()
}
