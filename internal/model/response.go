package model

import (
	"net/http"
	"time"

	"go-auth-service/pkg/apierror"
)

const errorTimestampLayout = "2006-01-02 15:04:05"

// UserResponse is the wire view of a User. It never carries the password
// hash, by construction.
type UserResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Status      UserStatus `json:"status"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

func NewUserResponse(u User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Phone:       u.Phone,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
	}

	if !u.CreatedAt.IsZero() {
		createdAt := u.CreatedAt
		resp.CreatedAt = &createdAt
	}
	if !u.UpdatedAt.IsZero() {
		updatedAt := u.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

// AuthResponse is returned by register and login. ExpiresIn is the token
// lifetime in seconds.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"`
	User      UserResponse `json:"user"`
}

// PageResponse is a 0-indexed page of results, newest first.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

func NewPageResponse[T any](content []T, pageNumber int, pageSize int, totalElements int64) PageResponse[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int((totalElements + int64(pageSize) - 1) / int64(pageSize))
	}

	hasNext := pageNumber+1 < totalPages

	return PageResponse[T]{
		Content:       content,
		PageNumber:    pageNumber,
		PageSize:      pageSize,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		First:         pageNumber == 0,
		Last:          !hasNext,
		HasNext:       hasNext,
		HasPrevious:   pageNumber > 0,
	}
}

// ErrorResponse is the single JSON shape every failure is serialized as.
// Null fields are omitted.
type ErrorResponse struct {
	Status       int                  `json:"status"`
	Code         string               `json:"code"`
	InternalCode string               `json:"internalCode,omitempty"`
	Message      string               `json:"message"`
	Details      string               `json:"details,omitempty"`
	Path         string               `json:"path"`
	Timestamp    string               `json:"timestamp"`
	TraceID      string               `json:"traceId"`
	FieldErrors  []apierror.FieldError `json:"fieldErrors,omitempty"`
}

// NewErrorResponse builds the envelope for a typed failure, stamping the
// request path, a formatted timestamp and a fresh trace id. Internal errors
// get a generic details line pointing support at the trace id.
func NewErrorResponse(path string, e *apierror.APIError) ErrorResponse {
	traceID := apierror.NewTraceID()

	details := e.Details
	if details == "" && e.HTTPStatus >= http.StatusInternalServerError {
		details = "Please contact support with trace ID: " + traceID
	}

	return ErrorResponse{
		Status:       e.HTTPStatus,
		Code:         e.Code,
		InternalCode: e.InternalCode,
		Message:      e.Message,
		Details:      details,
		Path:         path,
		Timestamp:    time.Now().Format(errorTimestampLayout),
		TraceID:      traceID,
		FieldErrors:  e.FieldErrors,
	}
}
