package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"

	"go-auth-service/internal/model"
	"go-auth-service/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// writeError maps any failure onto the uniform error envelope. It is the
// single place where error variants map to HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := classify(err)
	body := model.NewErrorResponse(r.URL.Path, e)

	if e.HTTPStatus >= http.StatusInternalServerError {
		slog.Error("request failed", "trace_id", body.TraceID, "code", e.Code,
			"path", r.URL.Path, "error", err)
	} else {
		slog.Warn("request failed", "trace_id", body.TraceID, "code", e.Code,
			"path", r.URL.Path, "error", err)
	}

	writeJSON(w, e.HTTPStatus, body)
}

func classify(err error) *apierror.APIError {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		return apierror.Validation("", toFieldErrors(validationErrs, nil))
	}

	switch {
	case errors.Is(err, model.ErrTokenExpired):
		return apierror.TokenExpired()
	case errors.Is(err, model.ErrTokenMalformed),
		errors.Is(err, model.ErrTokenSignature),
		errors.Is(err, model.ErrTokenSubjectMismatch):
		return apierror.InvalidToken()
	case errors.Is(err, model.ErrInvalidCredentials):
		return apierror.InvalidCredentials()
	case errors.Is(err, model.ErrUserNotFound):
		return apierror.NotFoundMessage("User not found")
	}

	return apierror.Internal()
}

// toFieldErrors flattens ozzo validation errors into the envelope's
// per-field list, sorted for a deterministic response. values supplies the
// rejected inputs; sensitive fields are simply left out of it.
func toFieldErrors(errs validation.Errors, values map[string]any) []apierror.FieldError {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]apierror.FieldError, 0, len(fields))
	for _, field := range fields {
		fe := apierror.FieldError{Field: field, Message: errs[field].Error()}
		if values != nil {
			fe.RejectedValue = values[field]
		}
		out = append(out, fe)
	}
	return out
}

// validationError converts a failed DTO Validate() result into a typed
// validation failure carrying rejected values.
func validationError(err error, values map[string]any) error {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		return apierror.Validation("", toFieldErrors(validationErrs, values))
	}
	return apierror.Validation(err.Error(), nil)
}
