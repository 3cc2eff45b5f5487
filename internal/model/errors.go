package model

import "errors"

var (
	// Token failure taxonomy. Callers surface all four identically; the
	// distinction exists for logs only.
	ErrTokenMalformed       = errors.New("token malformed")
	ErrTokenSignature       = errors.New("token signature invalid")
	ErrTokenExpired         = errors.New("token expired")
	ErrTokenSubjectMismatch = errors.New("token subject mismatch")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)
