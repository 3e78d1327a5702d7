// Package domain contains the core business entities for BlogAPI.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (database, network, etc.).

var (
	// ===========================================
	// User Errors
	// ===========================================

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates a user with the same username/email exists.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserInactive indicates the user account is disabled.
	ErrUserInactive = errors.New("user account is inactive")

	// ErrInvalidCredentials indicates authentication failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ===========================================
	// Blog Errors
	// ===========================================

	// ErrBlogNotFound indicates the requested blog does not exist.
	ErrBlogNotFound = errors.New("blog not found")

	// ErrBlogTitleEmpty indicates the blog title is empty.
	ErrBlogTitleEmpty = errors.New("blog title must not be empty")

	// ErrBlogContentEmpty indicates the blog content is empty.
	ErrBlogContentEmpty = errors.New("blog content must not be empty")

	// ===========================================
	// Tag Errors
	// ===========================================

	// ErrTagNotFound indicates the requested tag does not exist.
	ErrTagNotFound = errors.New("tag not found")

	// ErrTagAlreadyExists indicates a tag with the same name exists.
	ErrTagAlreadyExists = errors.New("tag already exists")

	// ErrTagNameLength indicates the tag name length is invalid (3-50 chars).
	ErrTagNameLength = errors.New("tag name must be between 3 and 50 characters")

	// ErrTagDescriptionLength indicates the tag description exceeds 255 chars.
	ErrTagDescriptionLength = errors.New("tag description must be at most 255 characters")

	// ErrUnknownTag indicates a tag ID in a blog update does not reference
	// an existing tag. The whole operation is rejected, never partially applied.
	ErrUnknownTag = errors.New("unknown tag")

	// ===========================================
	// Comment Errors
	// ===========================================

	// ErrCommentNotFound indicates the requested comment does not exist,
	// or (for non-admin deletes) the id/author pair did not match.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrCommentLength indicates the comment length is invalid (1-500 chars).
	ErrCommentLength = errors.New("comment must be between 1 and 500 characters")

	// ===========================================
	// Authorization Errors
	// ===========================================

	// ErrForbidden indicates the resource exists but the actor is neither
	// its owner nor an admin. Always checked after resolution, so a
	// missing resource surfaces as a not-found error instead.
	ErrForbidden = errors.New("actor lacks permission for this resource")

	// ===========================================
	// Infrastructure Errors
	// ===========================================

	// ErrStorageFailure indicates an underlying persistence fault.
	// The enclosing transaction has been rolled back.
	ErrStorageFailure = errors.New("storage failure")
)

// DomainError wraps a domain error with additional context.
type DomainError struct {
	// Err is the underlying domain error.
	Err error

	// Message provides additional context.
	Message string

	// Resource identifies the affected resource (e.g., "blog 42").
	Resource string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Err.Error(), e.Message, e.Resource)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError with context.
func NewDomainError(err error, message, resource string) *DomainError {
	return &DomainError{
		Err:      err,
		Message:  message,
		Resource: resource,
	}
}

// StorageError reports a persistence fault together with the attempted
// operation and entity type. Gateways wrap every unanticipated driver
// error in a StorageError before it leaves the package; raw driver
// errors never reach the service layer.
type StorageError struct {
	// Op is the attempted gateway operation, e.g. "create" or "list".
	Op string

	// Entity is the entity type the operation targeted.
	Entity string

	// Err is the underlying driver error.
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure: %s %s: %v", e.Op, e.Entity, e.Err)
}

// Unwrap returns the underlying driver error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is reports ErrStorageFailure as a match so callers can classify the
// failure without depending on the concrete type.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageFailure
}

// NewStorageError wraps a driver error with operation context.
func NewStorageError(op, entity string, err error) *StorageError {
	return &StorageError{Op: op, Entity: entity, Err: err}
}
