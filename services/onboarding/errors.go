package onboarding

import "errors"

var (
	// ErrFormIncomplete is returned when any registration field is empty.
	// The check is presence only; no format validation is performed.
	ErrFormIncomplete = errors.New("please fill in all fields to continue")

	// ErrAccountNotFound is returned on login when no profile is stored.
	ErrAccountNotFound = errors.New("account not found")

	// ErrLoginFailed is returned when the credentials do not match the
	// stored profile.
	ErrLoginFailed = errors.New("login failed")
)
