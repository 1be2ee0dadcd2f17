package auth

import "errors"

var (
	// ErrMissingCredentials is returned when username or password is empty.
	ErrMissingCredentials = errors.New("username and password required")
	// ErrMissingCode is returned when username or 2FA code is empty.
	ErrMissingCode = errors.New("username and 2FA code required")
	// ErrInvalidCredentials covers both unknown usernames and wrong passwords
	// so the login response carries no enumeration signal.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned by lookups on the 2FA endpoints, where the
	// caller already proved knowledge of the username via the password step.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCode is returned when a 2FA code fails verification.
	ErrInvalidCode = errors.New("invalid 2FA code")
	// ErrUsernameTaken is returned when registration loses the race at the
	// store's uniqueness constraint.
	ErrUsernameTaken = errors.New("username already exists")
)
