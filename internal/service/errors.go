// Package service provides business logic services for BlogAPI.
package service

import "errors"

// Common service errors.
var (
	// Validation errors
	ErrInvalidPassword = errors.New("invalid password: must be at least 8 characters")
	ErrInvalidUsername = errors.New("invalid username: must be 3-255 characters")
	ErrInvalidEmail    = errors.New("invalid email format")

	// General errors
	ErrInternalError = errors.New("internal server error")
)
