package types

import (
	"errors"
	"fmt"
	"net/http"
)

// CustomError is the only error shape that crosses the HTTP boundary.
// Code is the HTTP status, Type the stable machine readable error code.
type CustomError struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Type    string              `json:"type"`
	Details map[string][]string `json:"details,omitempty"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NewError builds a CustomError.
func NewError(code int, errorType, message string) *CustomError {
	return &CustomError{Code: code, Message: message, Type: errorType}
}

// NewValidationError builds a 400 VALIDATION_ERROR carrying per-field messages.
func NewValidationError(details map[string][]string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Type:    CodeValidation,
		Details: details,
	}
}

// Error codes
const (
	CodeValidation            = "VALIDATION_ERROR"
	CodeMissingRequiredFields = "MISSING_REQUIRED_FIELDS"
	CodeInvalidStatus         = "INVALID_STATUS"
	CodeInvalidAction         = "INVALID_ACTION"
	CodeInvalidInput          = "INVALID_INPUT"
	CodeInvalidData           = "INVALID_DATA"
	CodeMissingData           = "MISSING_DATA"
	CodeInvalidUserInfo       = "INVALID_USER_INFO"
	CodeGoogleUser            = "GOOGLE_USER"
	CodeInvalidOperation      = "INVALID_OPERATION"
	CodeCannotWithdraw        = "CANNOT_WITHDRAW"

	CodeNotFound              = "NOT_FOUND"
	CodeJobNotFound           = "JOB_NOT_FOUND"
	CodeApplicationNotFound   = "APPLICATION_NOT_FOUND"
	CodeUserNotFound          = "USER_NOT_FOUND"
	CodeCompanyNotFound       = "COMPANY_NOT_FOUND"
	CodeExperienceNotFound    = "EXPERIENCE_NOT_FOUND"
	CodeEducationNotFound     = "EDUCATION_NOT_FOUND"
	CodeSkillNotFound         = "SKILL_NOT_FOUND"
	CodeCertificationNotFound = "CERTIFICATION_NOT_FOUND"

	CodeAlreadyApplied   = "ALREADY_APPLIED"
	CodeAlreadySaved     = "ALREADY_SAVED"
	CodeUserExists       = "USER_EXISTS"
	CodeGoogleUserExists = "GOOGLE_USER_EXISTS"
	CodeEmailUserExists  = "EMAIL_USER_EXISTS"
	CodeCompanyExists    = "COMPANY_EXISTS"

	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidPassword    = "INVALID_PASSWORD"
	CodeAccountDeactivated = "ACCOUNT_DEACTIVATED"

	CodeAccessDenied  = "ACCESS_DENIED"
	CodeAdminRequired = "ADMIN_REQUIRED"

	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeServerError     = "SERVER_ERROR"
)

// Sentinel errors returned by the service layer. Compare with errors.Is.
var (
	ErrJobNotFound           = NewError(http.StatusNotFound, CodeJobNotFound, "Job not found")
	ErrApplicationNotFound   = NewError(http.StatusNotFound, CodeApplicationNotFound, "Application not found")
	ErrUserNotFound          = NewError(http.StatusNotFound, CodeUserNotFound, "User not found")
	ErrCompanyNotFound       = NewError(http.StatusNotFound, CodeCompanyNotFound, "Company not found")
	ErrExperienceNotFound    = NewError(http.StatusNotFound, CodeExperienceNotFound, "Work experience not found")
	ErrEducationNotFound     = NewError(http.StatusNotFound, CodeEducationNotFound, "Education not found")
	ErrSkillNotFound         = NewError(http.StatusNotFound, CodeSkillNotFound, "Skill not found")
	ErrCertificationNotFound = NewError(http.StatusNotFound, CodeCertificationNotFound, "Certification not found")

	ErrAlreadyApplied   = NewError(http.StatusConflict, CodeAlreadyApplied, "You have already applied to this job")
	ErrAlreadySaved     = NewError(http.StatusConflict, CodeAlreadySaved, "Job is already saved")
	ErrUserExists       = NewError(http.StatusConflict, CodeUserExists, "User with this email already exists")
	ErrGoogleUserExists = NewError(http.StatusConflict, CodeGoogleUserExists, "This email is already registered with Google. Please use Google Sign-In instead.")
	ErrEmailUserExists  = NewError(http.StatusConflict, CodeEmailUserExists, "This email is already registered with email/password. Please login with your password instead.")
	ErrCompanyExists    = NewError(http.StatusConflict, CodeCompanyExists, "Company with this email already exists")

	ErrMissingRequired  = NewError(http.StatusBadRequest, CodeMissingRequiredFields, "Job ID, contact info, and resume are required")
	ErrInvalidStatus    = NewError(http.StatusBadRequest, CodeInvalidStatus, "Invalid application status")
	ErrInvalidAction    = NewError(http.StatusBadRequest, CodeInvalidAction, "Invalid bulk action")
	ErrInvalidInput     = NewError(http.StatusBadRequest, CodeInvalidInput, "Application IDs array is required")
	ErrCannotWithdraw   = NewError(http.StatusBadRequest, CodeCannotWithdraw, "Cannot withdraw application that has been rejected or hired")
	ErrGoogleUser       = NewError(http.StatusBadRequest, CodeGoogleUser, "This account was created with Google. Please use Google Sign-In instead.")
	ErrInvalidOperation = NewError(http.StatusBadRequest, CodeInvalidOperation, "Password change is only available for email accounts")
	ErrMissingData      = NewError(http.StatusBadRequest, CodeMissingData, "Google token and user info are required")
	ErrInvalidUserInfo  = NewError(http.StatusBadRequest, CodeInvalidUserInfo, "Invalid user information from Google")

	ErrInvalidCredentials = NewError(http.StatusUnauthorized, CodeInvalidCredentials, "Invalid email or password")
	ErrInvalidPassword    = NewError(http.StatusUnauthorized, CodeInvalidPassword, "Current password is incorrect")
	ErrUnauthorized       = NewError(http.StatusUnauthorized, CodeUnauthorized, "Access token is required")
	ErrInvalidToken       = NewError(http.StatusUnauthorized, CodeInvalidToken, "Invalid access token")
	ErrTokenExpired       = NewError(http.StatusUnauthorized, CodeTokenExpired, "Access token has expired")
	ErrAccountDeactivated = NewError(http.StatusUnauthorized, CodeAccountDeactivated, "Account is deactivated")

	ErrAccessDenied = NewError(http.StatusForbidden, CodeAccessDenied, "Access denied")
)

// HasType reports whether err is a CustomError of the given error type
func HasType(err error, errorType string) bool {
	var ce *CustomError
	return errors.As(err, &ce) && ce.Type == errorType
}
