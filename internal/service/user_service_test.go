package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
)

func newUserService() (*UserService, *fakeUserRepo, *fakeTxManager) {
	repo := newFakeUserRepo()
	tx := &fakeTxManager{}
	return NewUserService(repo, tx, OwnerOrAdminPolicy{}, zerolog.Nop()), repo, tx
}

func seedUser(repo *fakeUserRepo, username, password string, role domain.Role) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := domain.NewUser(username, username+"@example.com", string(hash))
	user.Role = role
	return repo.add(user)
}

func TestUserServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with defaults", func(t *testing.T) {
		svc, _, _ := newUserService()

		out, err := svc.Create(ctx, CreateUserInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secretpass",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, out.User.Role)
		assert.True(t, out.User.IsActive)
		assert.NotEqual(t, "secretpass", out.User.HashedPassword)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		svc, repo, _ := newUserService()
		seedUser(repo, "alice", "secretpass", domain.RoleUser)

		_, err := svc.Create(ctx, CreateUserInput{
			Username: "alice",
			Email:    "other@example.com",
			Password: "secretpass",
		})
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		svc, repo, _ := newUserService()
		seedUser(repo, "alice", "secretpass", domain.RoleUser)

		_, err := svc.Create(ctx, CreateUserInput{
			Username: "bob",
			Email:    "alice@example.com",
			Password: "secretpass",
		})
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})

	t.Run("input validation", func(t *testing.T) {
		svc, _, _ := newUserService()

		_, err := svc.Create(ctx, CreateUserInput{Username: "ab", Email: "a@b.com", Password: "secretpass"})
		assert.ErrorIs(t, err, ErrInvalidUsername)

		_, err = svc.Create(ctx, CreateUserInput{Username: "alice", Email: "not-an-email", Password: "secretpass"})
		assert.ErrorIs(t, err, ErrInvalidEmail)

		_, err = svc.Create(ctx, CreateUserInput{Username: "alice", Email: "a@b.com", Password: "short"})
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})
}

func TestUserServiceAuthenticate(t *testing.T) {
	ctx := context.Background()

	svc, repo, _ := newUserService()
	user := seedUser(repo, "alice", "secretpass", domain.RoleUser)
	inactive := seedUser(repo, "bob", "secretpass", domain.RoleUser)
	inactive.IsActive = false

	t.Run("valid credentials", func(t *testing.T) {
		got, err := svc.Authenticate(ctx, "alice", "secretpass")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "alice", "wrongpass")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown username maps to invalid credentials", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody", "secretpass")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("inactive user cannot authenticate", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "bob", "secretpass")
		assert.ErrorIs(t, err, domain.ErrUserInactive)
	})
}

func TestUserServiceUpdate(t *testing.T) {
	ctx := context.Background()
	newName := "Alicia"

	t.Run("self update", func(t *testing.T) {
		svc, repo, _ := newUserService()
		user := seedUser(repo, "alice", "secretpass", domain.RoleUser)

		out, err := svc.Update(ctx, UpdateUserInput{
			Actor:  domain.Actor{UserID: user.ID, Role: domain.RoleUser},
			UserID: user.ID,
			Name:   &newName,
		})
		require.NoError(t, err)
		assert.Equal(t, newName, out.User.Name)
	})

	t.Run("another user is forbidden", func(t *testing.T) {
		svc, repo, _ := newUserService()
		user := seedUser(repo, "alice", "secretpass", domain.RoleUser)
		other := seedUser(repo, "bob", "secretpass", domain.RoleUser)

		_, err := svc.Update(ctx, UpdateUserInput{
			Actor:  domain.Actor{UserID: other.ID, Role: domain.RoleUser},
			UserID: user.ID,
			Name:   &newName,
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin may update anyone", func(t *testing.T) {
		svc, repo, _ := newUserService()
		user := seedUser(repo, "alice", "secretpass", domain.RoleUser)
		admin := seedUser(repo, "root", "secretpass", domain.RoleAdmin)

		out, err := svc.Update(ctx, UpdateUserInput{
			Actor:  domain.Actor{UserID: admin.ID, Role: domain.RoleAdmin},
			UserID: user.ID,
			Name:   &newName,
		})
		require.NoError(t, err)
		assert.Equal(t, newName, out.User.Name)
	})
}

func TestUserServiceUpdatePassword(t *testing.T) {
	ctx := context.Background()

	svc, repo, _ := newUserService()
	user := seedUser(repo, "alice", "secretpass", domain.RoleUser)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, UpdatePasswordInput{
			UserID:          user.ID,
			CurrentPassword: "wrongpass",
			NewPassword:     "newsecret",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("new password too short", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, UpdatePasswordInput{
			UserID:          user.ID,
			CurrentPassword: "secretpass",
			NewPassword:     "short",
		})
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("valid change", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, UpdatePasswordInput{
			UserID:          user.ID,
			CurrentPassword: "secretpass",
			NewPassword:     "newsecret",
		})
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, "alice", "newsecret")
		assert.NoError(t, err)
	})
}

func TestUserServiceSetActive(t *testing.T) {
	ctx := context.Background()

	svc, repo, _ := newUserService()
	user := seedUser(repo, "alice", "secretpass", domain.RoleUser)

	t.Run("non-admin is forbidden", func(t *testing.T) {
		err := svc.SetActive(ctx, domain.Actor{UserID: user.ID, Role: domain.RoleUser}, user.ID, false)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin deactivates", func(t *testing.T) {
		err := svc.SetActive(ctx, domain.Actor{UserID: 99, Role: domain.RoleAdmin}, user.ID, false)
		require.NoError(t, err)

		got, err := svc.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})
}

func TestUserServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("self delete runs in a transaction", func(t *testing.T) {
		svc, repo, tx := newUserService()
		user := seedUser(repo, "alice", "secretpass", domain.RoleUser)

		err := svc.Delete(ctx, domain.Actor{UserID: user.ID, Role: domain.RoleUser}, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, tx.calls)

		_, err = svc.GetByID(ctx, user.ID)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("deleting another user is forbidden", func(t *testing.T) {
		svc, repo, _ := newUserService()
		user := seedUser(repo, "alice", "secretpass", domain.RoleUser)
		other := seedUser(repo, "bob", "secretpass", domain.RoleUser)

		err := svc.Delete(ctx, domain.Actor{UserID: other.ID, Role: domain.RoleUser}, user.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
