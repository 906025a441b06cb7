package user

import "errors"

// Storage contract errors. Every store implementation returns these same
// values so callers can branch with errors.Is regardless of the backend.
var (
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("email already exists")
)
