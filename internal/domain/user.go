// Package domain contains the core business entities for BlogAPI.
// These are pure Go structs with no external dependencies, representing
// the fundamental concepts of the blogging platform.
package domain

import (
	"time"
)

// DefaultProfilePicture is the placeholder URL assigned to users that
// have not uploaded a profile picture.
const DefaultProfilePicture = "https://static.blogapi.dev/placeholders/avatar.png"

// User represents a registered user in the system.
// Users own blogs and comments; deleting a user cascades to both.
type User struct {
	// ID is the unique identifier for the user (auto-generated).
	ID int64 `json:"id"`

	// Username is the unique username for login and display.
	// Constraints: 3-255 characters.
	Username string `json:"username"`

	// Email is the unique email address for the user.
	Email string `json:"email"`

	// Name is the user's given name.
	Name string `json:"name"`

	// LastName is the user's family name.
	LastName string `json:"last_name"`

	// HashedPassword is the bcrypt hash of the user's password.
	// This is never exposed in API responses.
	HashedPassword string `json:"-"`

	// Role determines the user's privilege level.
	Role Role `json:"role"`

	// IsActive indicates whether the user account is active.
	// Inactive users cannot authenticate or perform any operations.
	IsActive bool `json:"is_active"`

	// ProfilePicture is the URL of the user's avatar.
	ProfilePicture string `json:"profile_picture"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a new User with default values.
func NewUser(username, email, hashedPassword string) *User {
	now := time.Now().UTC()
	return &User{
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		Role:           RoleUser,
		IsActive:       true,
		ProfilePicture: DefaultProfilePicture,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// CanAuthenticate returns true if the user is allowed to authenticate.
func (u *User) CanAuthenticate() bool {
	return u.IsActive
}
