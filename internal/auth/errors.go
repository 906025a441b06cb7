package auth

import "errors"

// Business failures of the signup/signin flows. Handlers map these onto
// status codes; anything else coming out of a flow is an infrastructure
// failure and surfaces as a 500.
var (
	ErrPasswordsDoNotMatch = errors.New("passwords do not match")
	ErrEmailTaken          = errors.New("email already in use")

	// Deliberately shared by "no such user" and "wrong password" so responses
	// cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
