package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrUnavailable   = errors.New("backend unavailable")
	ErrNotVerified   = errors.New("account not verified")
	ErrNotAuthorized = errors.New("action requires admin role")
)
