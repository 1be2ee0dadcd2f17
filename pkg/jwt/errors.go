package jwt

import "errors"

var (
	ErrMissingSigningKey       = errors.New("jwt: missing signing key")
	ErrMissingSubject          = errors.New("jwt: missing subject")
	ErrInvalidTTL              = errors.New("jwt: ttl must be positive")
	ErrInvalidToken            = errors.New("jwt: invalid token")
	ErrExpiredToken            = errors.New("jwt: token is expired")
	ErrInvalidSignature        = errors.New("jwt: invalid signature")
	ErrUnexpectedSigningMethod = errors.New("jwt: unexpected signing method")
)
