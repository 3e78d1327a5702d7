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

type commentFixture struct {
	svc      *CommentService
	comments *fakeCommentRepo
	blogs    *fakeBlogRepo
}

func newCommentFixture() *commentFixture {
	comments := newFakeCommentRepo()
	blogs := newFakeBlogRepo(nil)
	svc := NewCommentService(comments, blogs, zerolog.Nop())
	return &commentFixture{svc: svc, comments: comments, blogs: blogs}
}

func TestCommentServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates comment on existing blog", func(t *testing.T) {
		f := newCommentFixture()
		blog := f.blogs.add(1, "Post", true)

		out, err := f.svc.Create(ctx, CreateCommentInput{
			Actor:   domain.Actor{UserID: 2, Role: domain.RoleUser},
			BlogID:  blog.ID,
			Content: "Nice post",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), out.Comment.AuthorID)
		assert.Equal(t, blog.ID, out.Comment.BlogID)
	})

	t.Run("missing blog reports not found", func(t *testing.T) {
		f := newCommentFixture()

		_, err := f.svc.Create(ctx, CreateCommentInput{
			Actor:   domain.Actor{UserID: 2, Role: domain.RoleUser},
			BlogID:  404,
			Content: "Nice post",
		})
		assert.ErrorIs(t, err, domain.ErrBlogNotFound)
	})

	t.Run("content length is validated", func(t *testing.T) {
		f := newCommentFixture()
		blog := f.blogs.add(1, "Post", true)

		_, err := f.svc.Create(ctx, CreateCommentInput{
			Actor:  domain.Actor{UserID: 2, Role: domain.RoleUser},
			BlogID: blog.ID,
		})
		assert.ErrorIs(t, err, domain.ErrCommentLength)

		_, err = f.svc.Create(ctx, CreateCommentInput{
			Actor:   domain.Actor{UserID: 2, Role: domain.RoleUser},
			BlogID:  blog.ID,
			Content: strings.Repeat("x", domain.CommentMaxLength+1),
		})
		assert.ErrorIs(t, err, domain.ErrCommentLength)
	})
}

func TestCommentServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("author edits own comment", func(t *testing.T) {
		f := newCommentFixture()
		c := f.comments.add(1, 2, "original")

		out, err := f.svc.Update(ctx, UpdateCommentInput{
			Actor:     domain.Actor{UserID: 2, Role: domain.RoleUser},
			CommentID: c.ID,
			Content:   "edited",
		})
		require.NoError(t, err)
		assert.Equal(t, "edited", out.Comment.Content)
	})

	t.Run("admin cannot edit another user's comment", func(t *testing.T) {
		f := newCommentFixture()
		c := f.comments.add(1, 2, "original")

		_, err := f.svc.Update(ctx, UpdateCommentInput{
			Actor:     domain.Actor{UserID: 99, Role: domain.RoleAdmin},
			CommentID: c.ID,
			Content:   "edited",
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("missing comment reports not found", func(t *testing.T) {
		f := newCommentFixture()

		_, err := f.svc.Update(ctx, UpdateCommentInput{
			Actor:     domain.Actor{UserID: 2, Role: domain.RoleUser},
			CommentID: 404,
			Content:   "edited",
		})
		assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	})
}

func TestCommentServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("author deletes own comment", func(t *testing.T) {
		f := newCommentFixture()
		c := f.comments.add(1, 2, "bye")

		err := f.svc.Delete(ctx, domain.Actor{UserID: 2, Role: domain.RoleUser}, c.ID)
		require.NoError(t, err)
	})

	t.Run("another user's delete looks like not found", func(t *testing.T) {
		f := newCommentFixture()
		c := f.comments.add(1, 2, "bye")

		err := f.svc.Delete(ctx, domain.Actor{UserID: 3, Role: domain.RoleUser}, c.ID)
		assert.ErrorIs(t, err, domain.ErrCommentNotFound)

		// The comment is still there.
		_, err = f.svc.GetByID(ctx, c.ID)
		assert.NoError(t, err)
	})

	t.Run("admin deletes any comment", func(t *testing.T) {
		f := newCommentFixture()
		c := f.comments.add(1, 2, "bye")

		err := f.svc.Delete(ctx, domain.Actor{UserID: 99, Role: domain.RoleAdmin}, c.ID)
		require.NoError(t, err)

		_, err = f.svc.GetByID(ctx, c.ID)
		assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	})
}

func TestCommentServiceListByBlog(t *testing.T) {
	ctx := context.Background()

	f := newCommentFixture()
	blog := f.blogs.add(1, "Post", true)
	f.comments.add(blog.ID, 2, "first")
	f.comments.add(blog.ID, 3, "second")
	f.comments.add(999, 2, "elsewhere")

	t.Run("lists comments on a blog", func(t *testing.T) {
		out, err := f.svc.ListByBlog(ctx, blog.ID, ListCommentsInput{})
		require.NoError(t, err)
		require.Len(t, out.Comments, 2)
		assert.Equal(t, "first", out.Comments[0].Content)
	})

	t.Run("missing blog reports not found", func(t *testing.T) {
		_, err := f.svc.ListByBlog(ctx, 404, ListCommentsInput{})
		assert.ErrorIs(t, err, domain.ErrBlogNotFound)
	})
}

func TestCommentServiceListByAuthor(t *testing.T) {
	ctx := context.Background()

	f := newCommentFixture()
	f.comments.add(1, 2, "mine")
	f.comments.add(1, 3, "someone else's")

	out, err := f.svc.ListByAuthor(ctx, 2, ListCommentsInput{})
	require.NoError(t, err)
	require.Len(t, out.Comments, 1)
	assert.Equal(t, "mine", out.Comments[0].Content)
}
