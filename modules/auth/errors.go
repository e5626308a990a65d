package auth

import "errors"

var (
	// ErrInvalidCredential is returned for a missing, malformed, or
	// non-matching API key.
	ErrInvalidCredential = errors.New("auth: invalid or missing credential")

	// ErrUserNotFound is returned when no user exists for a username.
	ErrUserNotFound = errors.New("auth: user not found")

	// ErrStoreFailed wraps persistence errors.
	ErrStoreFailed = errors.New("auth: user store failed")
)
