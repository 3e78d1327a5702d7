package service

import "github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"

// Policy decides whether an actor may mutate a resource owned by
// another user. It is pure and synchronous; callers resolve NotFound
// before invoking it.
type Policy interface {
	Authorize(actor domain.Actor, ownerID int64) error
}

// OwnerOrAdminPolicy allows admins to act on any resource and other
// actors only on resources they own.
type OwnerOrAdminPolicy struct{}

// Authorize returns nil when the actor is an admin or owns the
// resource, domain.ErrForbidden otherwise.
func (OwnerOrAdminPolicy) Authorize(actor domain.Actor, ownerID int64) error {
	if actor.Role.IsAdmin() {
		return nil
	}
	if actor.UserID == ownerID {
		return nil
	}
	return domain.ErrForbidden
}

var _ Policy = OwnerOrAdminPolicy{}
