package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid e-mail or password")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrAdminRequired      = errors.New("administrator role required")
	ErrDeleteSelf         = errors.New("cannot delete the signed-in user")
	ErrEmailTaken         = errors.New("e-mail address is already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("role must be ADMIN or USER")
)
