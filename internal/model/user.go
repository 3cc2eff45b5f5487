package model

import "time"

// User is the authoritative account record. PasswordHash never leaves the
// process: it has no JSON mapping and response DTOs are built without it.
type User struct {
	ID           int64
	Username     string
	Email        string
	Phone        string
	PasswordHash string
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// Principal is the authenticated identity attached to a single request.
type Principal struct {
	Username    string
	Authorities []string
}

const RoleUser = "ROLE_USER"
