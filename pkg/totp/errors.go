package totp

import "errors"

var (
	ErrFailedToGenerateSecret = errors.New("failed to generate TOTP secret")
	ErrMissingSecret          = errors.New("missing secret")
	ErrInvalidSecret          = errors.New("invalid secret")
	ErrMissingAccountName     = errors.New("missing account name")
	ErrMissingIssuer          = errors.New("missing issuer")
	ErrInvalidCode            = errors.New("invalid code format")
	ErrInvalidWindow          = errors.New("validation window must not be negative")
)
