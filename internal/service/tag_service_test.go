package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
)

func newTagService() (*TagService, *fakeTagRepo) {
	repo := newFakeTagRepo()
	return NewTagService(repo, &fakeTxManager{}, zerolog.Nop()), repo
}

func TestTagServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates tag", func(t *testing.T) {
		svc, _ := newTagService()
		out, err := svc.Create(ctx, CreateTagInput{Name: "golang", Description: "the language"})
		require.NoError(t, err)
		assert.NotZero(t, out.Tag.ID)
		assert.Equal(t, "golang", out.Tag.Name)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		svc, repo := newTagService()
		repo.add("golang", "")

		_, err := svc.Create(ctx, CreateTagInput{Name: "golang"})
		assert.ErrorIs(t, err, domain.ErrTagAlreadyExists)
	})

	t.Run("name length is validated", func(t *testing.T) {
		svc, _ := newTagService()

		_, err := svc.Create(ctx, CreateTagInput{Name: ""})
		assert.ErrorIs(t, err, domain.ErrTagNameLength)

		_, err = svc.Create(ctx, CreateTagInput{Name: strings.Repeat("x", 300)})
		assert.ErrorIs(t, err, domain.ErrTagNameLength)
	})
}

func TestTagServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("renames tag", func(t *testing.T) {
		svc, repo := newTagService()
		tag := repo.add("golang", "")

		newName := "gopher"
		out, err := svc.Update(ctx, UpdateTagInput{TagID: tag.ID, Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, "gopher", out.Tag.Name)
	})

	t.Run("rename collision with another tag is rejected", func(t *testing.T) {
		svc, repo := newTagService()
		repo.add("golang", "")
		other := repo.add("webdev", "")

		collide := "golang"
		_, err := svc.Update(ctx, UpdateTagInput{TagID: other.ID, Name: &collide})
		assert.ErrorIs(t, err, domain.ErrTagAlreadyExists)
	})

	t.Run("keeping the same name is not a collision", func(t *testing.T) {
		svc, repo := newTagService()
		tag := repo.add("golang", "old")

		same := "golang"
		desc := "new"
		out, err := svc.Update(ctx, UpdateTagInput{TagID: tag.ID, Name: &same, Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, "new", out.Tag.Description)
	})

	t.Run("missing tag reports not found", func(t *testing.T) {
		svc, _ := newTagService()
		name := "xyz"
		_, err := svc.Update(ctx, UpdateTagInput{TagID: 404, Name: &name})
		assert.ErrorIs(t, err, domain.ErrTagNotFound)
	})
}

func TestTagServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("admin deletes tag", func(t *testing.T) {
		svc, repo := newTagService()
		tag := repo.add("golang", "")

		err := svc.Delete(ctx, domain.Actor{UserID: 1, Role: domain.RoleAdmin}, tag.ID)
		require.NoError(t, err)

		_, err = svc.GetByID(ctx, tag.ID)
		assert.ErrorIs(t, err, domain.ErrTagNotFound)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		svc, repo := newTagService()
		tag := repo.add("golang", "")

		err := svc.Delete(ctx, domain.Actor{UserID: 1, Role: domain.RoleUser}, tag.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("missing tag reports not found", func(t *testing.T) {
		svc, _ := newTagService()
		err := svc.Delete(ctx, domain.Actor{UserID: 1, Role: domain.RoleAdmin}, 404)
		assert.ErrorIs(t, err, domain.ErrTagNotFound)
	})
}

func TestTagServiceList(t *testing.T) {
	ctx := context.Background()

	svc, repo := newTagService()
	repo.add("golang", "")
	repo.add("webdev", "")

	out, err := svc.List(ctx, ListTagsInput{})
	require.NoError(t, err)
	assert.Len(t, out.Tags, 2)
	assert.Equal(t, int64(2), out.TotalCount)
}
