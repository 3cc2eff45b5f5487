package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[0-9]{10,20}$`)

	passwordLower = regexp.MustCompile(`[a-z]`)
	passwordUpper = regexp.MustCompile(`[A-Z]`)
	passwordDigit = regexp.MustCompile(`[0-9]`)
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username cannot be empty"),
			validation.Length(3, 20).Error("username must be between 3-20 characters"),
			validation.Match(usernamePattern).Error("username can only contain letters, numbers and underscores"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email cannot be empty"),
			validation.Length(0, 100).Error("email must not exceed 100 characters"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password cannot be empty"),
			validation.Length(8, 0).Error("password must be at least 8 characters"),
			validation.Match(passwordLower).Error("password must contain at least one lowercase letter"),
			validation.Match(passwordUpper).Error("password must contain at least one uppercase letter"),
			validation.Match(passwordDigit).Error("password must contain at least one digit"),
		),
	)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("username cannot be empty")),
		validation.Field(&r.Password, validation.Required.Error("password cannot be empty")),
	)
}

// UpdateUserRequest carries the narrow profile update surface. Blank values
// mean "not provided" and are skipped by both validation and the service.
type UpdateUserRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r UpdateUserRequest) Validate() error {
	errs := validation.Errors{}

	if email := strings.TrimSpace(r.Email); email != "" {
		if err := validation.Validate(email,
			validation.Length(0, 100).Error("email must not exceed 100 characters"),
			is.Email.Error("invalid email format"),
		); err != nil {
			errs["email"] = err
		}
	}

	if phone := strings.TrimSpace(r.Phone); phone != "" {
		if err := validation.Validate(phone,
			validation.Match(phonePattern).Error("phone number must be 10-20 digits, optionally starting with +"),
		); err != nil {
			errs["phone"] = err
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
