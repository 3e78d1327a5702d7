// Package auth provides JWT issuing and verification for BlogAPI.
package auth

import "errors"

// Authentication errors.
var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrAccessDenied = errors.New("access denied")
)
