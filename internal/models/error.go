package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicateIdentity  = errors.New("email or college ID already registered")
	ErrInvalidCredentials = errors.New("invalid email/username or password")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrMissingToken       = errors.New("token required")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrNoOpUpdate         = errors.New("no valid fields to update")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrInternalServer     = errors.New("internal server error")
)
