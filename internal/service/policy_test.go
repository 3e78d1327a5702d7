package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
)

func TestOwnerOrAdminPolicy(t *testing.T) {
	policy := OwnerOrAdminPolicy{}

	tests := []struct {
		name    string
		actor   domain.Actor
		ownerID int64
		wantErr error
	}{
		{
			name:    "owner can act on own resource",
			actor:   domain.Actor{UserID: 42, Role: domain.RoleUser},
			ownerID: 42,
		},
		{
			name:    "admin can act on anyone's resource",
			actor:   domain.Actor{UserID: 1, Role: domain.RoleAdmin},
			ownerID: 42,
		},
		{
			name:    "regular user cannot act on another's resource",
			actor:   domain.Actor{UserID: 7, Role: domain.RoleUser},
			ownerID: 42,
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "guest cannot act on anything",
			actor:   domain.Actor{Role: domain.RoleGuest},
			ownerID: 42,
			wantErr: domain.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Authorize(tt.actor, tt.ownerID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
