package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Public error codes returned to clients, paired with internal codes used
// for log correlation.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeBusiness           = "BUSINESS_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeDuplicateResource  = "DUPLICATE_RESOURCE"
	CodeAuthentication     = "AUTHENTICATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccessDenied       = "ACCESS_DENIED"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeInternal           = "INTERNAL_ERROR"
	CodeDatabase           = "DATABASE_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"

	InternalValidation         = "VAL001"
	InternalBusiness           = "BUS001"
	InternalNotFound           = "RES001"
	InternalDuplicateResource  = "RES002"
	InternalAuthentication     = "AUTH001"
	InternalInvalidCredentials = "AUTH002"
	InternalAccessDenied       = "AUTH003"
	InternalTokenExpired       = "AUTH004"
	InternalInvalidToken       = "AUTH005"
	InternalServer             = "SRV001"
	InternalDatabase           = "SRV002"
	InternalServiceUnavailable = "SRV003"
	InternalUserNotFound       = "USR001"
	InternalUserAlreadyExists  = "USR002"
)

// FieldError describes a single rejected input field on a validation failure.
type FieldError struct {
	Field         string `json:"field"`
	Message       string `json:"message"`
	RejectedValue any    `json:"rejectedValue,omitempty"`
}

// APIError is the typed failure every domain component raises. The HTTP
// adapter is the only place that maps it onto the wire envelope.
type APIError struct {
	HTTPStatus   int
	Code         string
	InternalCode string
	Message      string
	Details      string
	FieldErrors  []FieldError
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(status int, code string, internalCode string, message string) *APIError {
	return &APIError{HTTPStatus: status, Code: code, InternalCode: internalCode, Message: message}
}

func Validation(message string, fieldErrors []FieldError) *APIError {
	if message == "" {
		message = "Validation failed"
	}

	e := New(http.StatusBadRequest, CodeValidation, InternalValidation, message)
	e.FieldErrors = fieldErrors
	return e
}

func Business(message string) *APIError {
	return New(http.StatusBadRequest, CodeBusiness, InternalBusiness, message)
}

func NotFound(resource string, id any) *APIError {
	return New(http.StatusNotFound, CodeNotFound, InternalNotFound,
		fmt.Sprintf("%s not found with id: '%v'", resource, id))
}

func NotFoundMessage(message string) *APIError {
	return New(http.StatusNotFound, CodeNotFound, InternalNotFound, message)
}

func Duplicate(resource string, field string, value any) *APIError {
	return New(http.StatusConflict, CodeDuplicateResource, InternalDuplicateResource,
		fmt.Sprintf("%s already exists with %s: '%v'", resource, field, value))
}

func InvalidCredentials() *APIError {
	return New(http.StatusUnauthorized, CodeInvalidCredentials, InternalInvalidCredentials,
		"Invalid username or password")
}

func Authentication(message string) *APIError {
	return New(http.StatusUnauthorized, CodeAuthentication, InternalAuthentication, message)
}

func AccessDenied() *APIError {
	return New(http.StatusForbidden, CodeAccessDenied, InternalAccessDenied,
		"You do not have permission to access this resource")
}

func TokenExpired() *APIError {
	return New(http.StatusUnauthorized, CodeTokenExpired, InternalTokenExpired, "Token has expired")
}

func InvalidToken() *APIError {
	return New(http.StatusUnauthorized, CodeInvalidToken, InternalInvalidToken, "Invalid token")
}

func Internal() *APIError {
	return New(http.StatusInternalServerError, CodeInternal, InternalServer,
		"Internal server error, please try again later")
}

func Database() *APIError {
	return New(http.StatusInternalServerError, CodeDatabase, InternalDatabase,
		"A database error occurred, please try again later")
}

// IsNotFound reports whether err is a typed not-found failure.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == CodeNotFound
}

// IsDuplicate reports whether err is a typed duplicate-resource failure.
func IsDuplicate(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == CodeDuplicateResource
}

// NewTraceID returns a short random identifier included in both the log line
// and the error response so a user-visible failure can be matched with
// server-side diagnostics.
func NewTraceID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
