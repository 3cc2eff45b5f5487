package model

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-auth-service/pkg/apierror"
)

func TestNewUserResponse(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	t.Run("full record", func(t *testing.T) {
		login := now.Add(time.Minute)
		resp := NewUserResponse(User{
			ID:           7,
			Username:     "alice",
			Email:        "alice@example.com",
			Phone:        "+12025550123",
			PasswordHash: "$2a$10$secret",
			Status:       StatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
			LastLoginAt:  &login,
		})

		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "+12025550123", resp.Phone)
		require.NotNil(t, resp.CreatedAt)
		assert.True(t, resp.CreatedAt.Equal(now))
		require.NotNil(t, resp.LastLoginAt)
		assert.True(t, resp.LastLoginAt.Equal(login))
	})

	t.Run("zero timestamps are omitted", func(t *testing.T) {
		resp := NewUserResponse(User{ID: 1, Username: "alice"})
		assert.Nil(t, resp.CreatedAt)
		assert.Nil(t, resp.UpdatedAt)
		assert.Nil(t, resp.LastLoginAt)
	})

	t.Run("wire shape never leaks the password hash", func(t *testing.T) {
		resp := NewUserResponse(User{
			ID:           1,
			Username:     "alice",
			PasswordHash: "$2a$10$secret",
			Status:       StatusActive,
		})

		raw, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "password")
		assert.NotContains(t, string(raw), "$2a$10$secret")
		assert.NotContains(t, string(raw), "phone")
	})
}

func TestNewPageResponse(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		size        int
		total       int64
		totalPages  int
		first       bool
		last        bool
		hasNext     bool
		hasPrevious bool
	}{
		{"empty result", 0, 10, 0, 0, true, true, false, false},
		{"single full page", 0, 10, 10, 1, true, true, false, false},
		{"first of three", 0, 10, 25, 3, true, false, true, false},
		{"middle of three", 1, 10, 25, 3, false, false, true, true},
		{"last of three", 2, 10, 25, 3, false, true, false, true},
		{"beyond the end", 9, 10, 25, 3, false, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewPageResponse([]string{}, tt.page, tt.size, tt.total)

			assert.Equal(t, tt.page, resp.PageNumber)
			assert.Equal(t, tt.size, resp.PageSize)
			assert.Equal(t, tt.total, resp.TotalElements)
			assert.Equal(t, tt.totalPages, resp.TotalPages)
			assert.Equal(t, tt.first, resp.First)
			assert.Equal(t, tt.last, resp.Last)
			assert.Equal(t, tt.hasNext, resp.HasNext)
			assert.Equal(t, tt.hasPrevious, resp.HasPrevious)
		})
	}

	t.Run("nil content serializes as empty array", func(t *testing.T) {
		resp := NewPageResponse[string](nil, 0, 10, 0)

		raw, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"content":[]`)
	})
}

func TestNewErrorResponse(t *testing.T) {
	t.Run("client error", func(t *testing.T) {
		resp := NewErrorResponse("/api/users/1", apierror.NotFound("User", 1))

		assert.Equal(t, http.StatusNotFound, resp.Status)
		assert.Equal(t, apierror.CodeNotFound, resp.Code)
		assert.Equal(t, apierror.InternalNotFound, resp.InternalCode)
		assert.Equal(t, "User not found with id: '1'", resp.Message)
		assert.Equal(t, "/api/users/1", resp.Path)
		assert.Empty(t, resp.Details)
		assert.Len(t, resp.TraceID, 8)

		_, err := time.Parse("2006-01-02 15:04:05", resp.Timestamp)
		assert.NoError(t, err)
	})

	t.Run("server error gets support details", func(t *testing.T) {
		resp := NewErrorResponse("/api/users", apierror.Internal())

		assert.Equal(t, http.StatusInternalServerError, resp.Status)
		assert.Contains(t, resp.Details, "Please contact support with trace ID: "+resp.TraceID)
	})

	t.Run("field errors are carried through", func(t *testing.T) {
		e := apierror.Validation("", []apierror.FieldError{
			{Field: "email", Message: "invalid email format", RejectedValue: "nope"},
		})
		resp := NewErrorResponse("/api/auth/register", e)

		require.Len(t, resp.FieldErrors, 1)
		assert.Equal(t, "email", resp.FieldErrors[0].Field)
		assert.Equal(t, "nope", resp.FieldErrors[0].RejectedValue)
	})
}
