package model

// UserStatus is the enumerated lifecycle state of an account. Transitions are
// driven by administrative paths only; the HTTP surface never mutates it.
type UserStatus string

const (
	StatusActive              UserStatus = "ACTIVE"
	StatusInactive            UserStatus = "INACTIVE"
	StatusLocked              UserStatus = "LOCKED"
	StatusPendingVerification UserStatus = "PENDING_VERIFICATION"
)

func (s UserStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusLocked, StatusPendingVerification:
		return true
	}
	return false
}

// MayAuthenticate reports whether a credential check is allowed to succeed
// for an account in this state.
func (s UserStatus) MayAuthenticate() bool {
	return s == StatusActive
}

// MayReceiveToken reports whether new bearer tokens may be issued for an
// account in this state.
func (s UserStatus) MayReceiveToken() bool {
	return s == StatusActive
}

func (s UserStatus) AccountLocked() bool {
	return s == StatusLocked
}

func (s UserStatus) Disabled() bool {
	return s != StatusActive
}
