package service

import "errors"

// Sentinel errors shared across services. Handlers translate these to HTTP
// statuses; no error kind is silently swallowed.
var (
	ErrForbidden      = errors.New("forbidden")
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidInput   = errors.New("invalid input")
)
