package model

import "errors"

// Error taxonomy surfaced to API callers. The REST handler layer maps
// these to HTTP statuses in exactly one place.
var (
	ErrNotFound           = errors.New("record not found")
	ErrEmailTaken         = errors.New("email already taken")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrAccountNotVerified = errors.New("account not verified")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
)
