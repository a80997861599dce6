package utils

import (
	"github.com/gofiber/fiber/v2"
)

// SuccessEnvelope is the body of every successful response
type SuccessEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorBody describes a failure
type ErrorBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

// ErrorEnvelope is the body of every failed response
type ErrorEnvelope struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// SuccessResponse sends data in the success envelope
func SuccessResponse(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(SuccessEnvelope{Success: true, Data: data})
}

// MessageResponse sends data and a human readable message in the success envelope.
// data may be nil for acknowledgements.
func MessageResponse(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(SuccessEnvelope{Success: true, Data: data, Message: message})
}

// ErrorResponse sends the error envelope
func ErrorResponse(c *fiber.Ctx, status int, code, message string, details map[string][]string) error {
	return c.Status(status).JSON(ErrorEnvelope{
		Error: ErrorBody{Code: code, Message: message, Details: details},
	})
}
