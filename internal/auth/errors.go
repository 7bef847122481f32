package auth

import "errors"

var (
	// ErrMissingToken is returned when a request carries no bearer token.
	ErrMissingToken = errors.New("no bearer token in request")

	// ErrInvalidToken is returned when the bearer token fails signature or claim validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUserNotFound is returned when the token subject does not resolve to a user.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserSuspended is returned when the token subject resolves to a suspended account.
	ErrUserSuspended = errors.New("user account is suspended")

	// ErrSecondFactorRequired is returned when a route demands second-factor
	// authentication and the presented token does not attest it.
	ErrSecondFactorRequired = errors.New("second factor authentication required")
)
