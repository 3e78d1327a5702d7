package domain

// Role is the privilege level of a user.
type Role string

const (
	// RoleAdmin grants unrestricted access to every resource.
	RoleAdmin Role = "admin"

	// RoleUser is the default role for registered users.
	RoleUser Role = "user"

	// RoleGuest is an unauthenticated or read-only identity.
	RoleGuest Role = "guest"
)

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// IsAdmin reports whether the role carries administrative privilege.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Actor is the authenticated identity performing an operation.
// It is derived from a verified bearer credential at the boundary and
// passed down to the service layer for ownership decisions.
type Actor struct {
	// UserID is the ID of the authenticated user.
	UserID int64

	// Role is the privilege level claimed by the credential.
	Role Role
}
