package entity

import "errors"

// Sentinel errors shared across repositories and services. The HTTP layer
// maps these to response status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)
