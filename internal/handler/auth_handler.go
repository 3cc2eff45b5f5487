package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"go-auth-service/internal/model"
	"go-auth-service/pkg/apierror"
)

type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error)
}

type AuthHandler struct {
	service AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, r, apierror.Validation("Malformed JSON request body", nil))
		return
	}

	if err := payload.Validate(); err != nil {
		// The password never echoes back in rejectedValue.
		writeError(w, r, validationError(err, map[string]any{
			"username": payload.Username,
			"email":    payload.Email,
		}))
		return
	}

	resp, err := h.service.Register(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, r, apierror.Validation("Malformed JSON request body", nil))
		return
	}

	if err := payload.Validate(); err != nil {
		writeError(w, r, validationError(err, map[string]any{
			"username": payload.Username,
		}))
		return
	}

	resp, err := h.service.Login(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Health handles GET /api/auth/health.
func (h *AuthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "Auth service is running")
}
