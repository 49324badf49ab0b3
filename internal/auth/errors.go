package auth

import "errors"

var (
	ErrUnauthorized = errors.New("auth: unauthorized")
	ErrForbidden    = errors.New("auth: forbidden")
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrTenantMismatch indicates a resource belongs to a different tenant.
	ErrTenantMismatch = errors.New("tenant mismatch")
)
