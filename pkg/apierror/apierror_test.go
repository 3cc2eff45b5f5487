package apierror

import (
	"fmt"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name         string
		err          *APIError
		status       int
		code         string
		internalCode string
		message      string
	}{
		{"validation", Validation("", nil), http.StatusBadRequest, CodeValidation, InternalValidation, "Validation failed"},
		{"business", Business("boom"), http.StatusBadRequest, CodeBusiness, InternalBusiness, "boom"},
		{"not found", NotFound("User", 42), http.StatusNotFound, CodeNotFound, InternalNotFound, "User not found with id: '42'"},
		{"duplicate", Duplicate("User", "email", "a@b.c"), http.StatusConflict, CodeDuplicateResource, InternalDuplicateResource, "User already exists with email: 'a@b.c'"},
		{"invalid credentials", InvalidCredentials(), http.StatusUnauthorized, CodeInvalidCredentials, InternalInvalidCredentials, "Invalid username or password"},
		{"authentication", Authentication("nope"), http.StatusUnauthorized, CodeAuthentication, InternalAuthentication, "nope"},
		{"access denied", AccessDenied(), http.StatusForbidden, CodeAccessDenied, InternalAccessDenied, "You do not have permission to access this resource"},
		{"token expired", TokenExpired(), http.StatusUnauthorized, CodeTokenExpired, InternalTokenExpired, "Token has expired"},
		{"invalid token", InvalidToken(), http.StatusUnauthorized, CodeInvalidToken, InternalInvalidToken, "Invalid token"},
		{"internal", Internal(), http.StatusInternalServerError, CodeInternal, InternalServer, "Internal server error, please try again later"},
		{"database", Database(), http.StatusInternalServerError, CodeDatabase, InternalDatabase, "A database error occurred, please try again later"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.internalCode, tt.err.InternalCode)
			assert.Equal(t, tt.message, tt.err.Message)
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	e := New(http.StatusBadRequest, CodeBusiness, InternalBusiness, "boom")
	assert.Equal(t, "BUSINESS_ERROR: boom", e.Error())

	e.Details = "more context"
	assert.Equal(t, "BUSINESS_ERROR: boom (more context)", e.Error())
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("User", 1)))
	assert.True(t, IsNotFound(fmt.Errorf("load user: %w", NotFoundMessage("User not found: alice"))))
	assert.False(t, IsNotFound(Duplicate("User", "email", "a@b.c")))
	assert.False(t, IsNotFound(fmt.Errorf("plain error")))
	assert.False(t, IsNotFound(nil))
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, IsDuplicate(Duplicate("User", "username", "alice")))
	assert.True(t, IsDuplicate(fmt.Errorf("insert: %w", Duplicate("User", "email", "a@b.c"))))
	assert.False(t, IsDuplicate(NotFound("User", 1)))
	assert.False(t, IsDuplicate(nil))
}

func TestNewTraceID(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-F]{8}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := NewTraceID()
		require.Regexp(t, pattern, id)
		seen[id] = true
	}

	// 50 collisions in a row would mean the generator is broken.
	assert.Greater(t, len(seen), 1)
}
