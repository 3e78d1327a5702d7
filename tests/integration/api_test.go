// Package integration provides end-to-end tests for the BlogAPI HTTP
// surface, running the full stack against an in-memory SQLite database.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/auth"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/handler"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository/sqlite"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/service"
)

type testServer struct {
	*httptest.Server
	users *service.UserService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ctx := context.Background()
	logger := zerolog.Nop()

	db, err := sqlite.NewDB(ctx, sqlite.DefaultConfig(":memory:"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(ctx))

	repos := sqlite.NewRepositories(db)
	issuer := auth.NewIssuer("integration-test-secret", time.Hour)
	policy := service.OwnerOrAdminPolicy{}

	userService := service.NewUserService(repos.User, repos.Tx, policy, logger)
	authService := service.NewAuthService(userService, issuer, logger)
	blogService := service.NewBlogService(repos.Blog, repos.Tag, repos.BlogTag, repos.Tx, policy, logger)
	tagService := service.NewTagService(repos.Tag, repos.Tx, logger)
	commentService := service.NewCommentService(repos.Comment, repos.Blog, logger)

	router := handler.NewRouter(handler.RouterConfig{
		AuthHandler:    handler.NewAuthHandler(authService, logger),
		UserHandler:    handler.NewUserHandler(userService, nil, 1<<20, logger),
		BlogHandler:    handler.NewBlogHandler(blogService, nil, 1<<20, logger),
		TagHandler:     handler.NewTagHandler(tagService, logger),
		CommentHandler: handler.NewCommentHandler(commentService, logger),
		TokenVerifier:  issuer,
		Health:         db,
		Logger:         logger,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, users: userService}
}

// do sends a JSON request and decodes the JSON response into out
// (when out is non-nil).
func (s *testServer) do(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()

	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		require.NoError(t, json.NewEncoder(reqBody).Encode(body))
	}

	req, err := http.NewRequest(method, s.URL+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// register creates an account through the API and returns its token.
func (s *testServer) register(t *testing.T, username string) (token string, userID int64) {
	t.Helper()

	var got struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	status := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secretpass",
	}, &got)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, got.Token)
	return got.Token, got.User.ID
}

// registerAdmin bootstraps an admin the way the admin CLI does and
// logs in through the API.
func (s *testServer) registerAdmin(t *testing.T) string {
	t.Helper()

	_, err := s.users.Create(context.Background(), service.CreateUserInput{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "secretpass",
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)

	var got struct {
		Token string `json:"token"`
	}
	status := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "admin",
		"password": "secretpass",
	}, &got)
	require.Equal(t, http.StatusOK, status)
	return got.Token
}

func TestBlogLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	srv := newTestServer(t)
	alice, _ := srv.register(t, "alice")
	bob, _ := srv.register(t, "bob")

	// Tags needed for the blog.
	var golang, webdev struct {
		ID int64 `json:"id"`
	}
	status := srv.do(t, http.MethodPost, "/api/v1/tags", alice, map[string]string{"name": "golang"}, &golang)
	require.Equal(t, http.StatusCreated, status)
	status = srv.do(t, http.MethodPost, "/api/v1/tags", alice, map[string]string{"name": "webdev"}, &webdev)
	require.Equal(t, http.StatusCreated, status)

	// Create a blog; it starts as a draft.
	var blog struct {
		ID          int64 `json:"id"`
		IsPublished bool  `json:"is_published"`
		Tags        []struct {
			ID int64 `json:"id"`
		} `json:"tags"`
	}
	status = srv.do(t, http.MethodPost, "/api/v1/blogs", alice, map[string]any{
		"title":   "Hello",
		"content": "First post",
		"tag_ids": []int64{golang.ID},
	}, &blog)
	require.Equal(t, http.StatusCreated, status)
	assert.False(t, blog.IsPublished)
	require.Len(t, blog.Tags, 1)

	// Drafts are invisible on the public listing.
	var list struct {
		Items      []json.RawMessage `json:"items"`
		TotalCount int64             `json:"total_count"`
	}
	status = srv.do(t, http.MethodGet, "/api/v1/blogs", "", nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, list.Items)

	// Bob cannot publish Alice's blog.
	status = srv.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/blogs/%d/publish", blog.ID), bob,
		map[string]bool{"is_published": true}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Alice publishes it.
	status = srv.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/blogs/%d/publish", blog.ID), alice,
		map[string]bool{"is_published": true}, nil)
	require.Equal(t, http.StatusOK, status)

	status = srv.do(t, http.MethodGet, "/api/v1/blogs", "", nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, int64(1), list.TotalCount)

	// Tag reconciliation: replace golang with webdev.
	var updated struct {
		Tags []struct {
			ID int64 `json:"id"`
		} `json:"tags"`
	}
	status = srv.do(t, http.MethodPut, fmt.Sprintf("/api/v1/blogs/%d", blog.ID), alice, map[string]any{
		"tag_ids": []int64{webdev.ID},
	}, &updated)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, webdev.ID, updated.Tags[0].ID)

	// An unknown tag ID rejects the whole update.
	status = srv.do(t, http.MethodPut, fmt.Sprintf("/api/v1/blogs/%d", blog.ID), alice, map[string]any{
		"tag_ids": []int64{webdev.ID, 9999},
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	// Bob comments on the published blog.
	var comment struct {
		ID int64 `json:"id"`
	}
	status = srv.do(t, http.MethodPost, "/api/v1/comments", bob, map[string]any{
		"blog_id": blog.ID,
		"content": "Nice post",
	}, &comment)
	require.Equal(t, http.StatusCreated, status)

	// Alice cannot delete Bob's comment; she sees not found.
	status = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/comments/%d", comment.ID), alice, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Bob deletes his own comment.
	status = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/comments/%d", comment.ID), bob, nil, nil)
	assert.Equal(t, http.StatusNoContent, status)

	// Deleting the blog cascades; it disappears from the listing.
	status = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/blogs/%d", blog.ID), alice, nil, nil)
	require.Equal(t, http.StatusNoContent, status)

	status = srv.do(t, http.MethodGet, fmt.Sprintf("/api/v1/blogs/%d", blog.ID), "", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAuthFlows(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	srv := newTestServer(t)
	srv.register(t, "alice")

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		status := srv.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"username": "alice",
			"email":    "alice2@example.com",
			"password": "secretpass",
		}, nil)
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("bad credentials are unauthorized", func(t *testing.T) {
		status := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": "alice",
			"password": "wrongpass",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("password change invalidates the old password", func(t *testing.T) {
		token, _ := srv.register(t, "carol")

		status := srv.do(t, http.MethodPut, "/api/v1/auth/password", token, map[string]string{
			"current_password": "secretpass",
			"new_password":     "evenmoresecret",
		}, nil)
		require.Equal(t, http.StatusNoContent, status)

		status = srv.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": "carol",
			"password": "secretpass",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, status)

		status = srv.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": "carol",
			"password": "evenmoresecret",
		}, nil)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("protected endpoints reject guests", func(t *testing.T) {
		status := srv.do(t, http.MethodPost, "/api/v1/blogs", "", map[string]string{
			"title":   "x",
			"content": "y",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestAdminOperations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	srv := newTestServer(t)
	admin := srv.registerAdmin(t)
	alice, aliceID := srv.register(t, "alice")

	t.Run("user listing is admin only", func(t *testing.T) {
		status := srv.do(t, http.MethodGet, "/api/v1/users", alice, nil, nil)
		assert.Equal(t, http.StatusForbidden, status)

		var list struct {
			TotalCount int64 `json:"total_count"`
		}
		status = srv.do(t, http.MethodGet, "/api/v1/users", admin, nil, &list)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, int64(2), list.TotalCount)
	})

	t.Run("deactivated users cannot log in", func(t *testing.T) {
		status := srv.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/users/%d/active", aliceID), admin,
			map[string]bool{"is_active": false}, nil)
		require.Equal(t, http.StatusNoContent, status)

		status = srv.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": "alice",
			"password": "secretpass",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("tag deletion is admin only", func(t *testing.T) {
		bob, _ := srv.register(t, "bob")

		var tag struct {
			ID int64 `json:"id"`
		}
		status := srv.do(t, http.MethodPost, "/api/v1/tags", bob, map[string]string{"name": "shortlived"}, &tag)
		require.Equal(t, http.StatusCreated, status)

		status = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/tags/%d", tag.ID), bob, nil, nil)
		assert.Equal(t, http.StatusForbidden, status)

		status = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/tags/%d", tag.ID), admin, nil, nil)
		assert.Equal(t, http.StatusNoContent, status)
	})

	t.Run("health endpoint reports database status", func(t *testing.T) {
		var health struct {
			Status   string `json:"status"`
			Database string `json:"database"`
		}
		status := srv.do(t, http.MethodGet, "/health", "", nil, &health)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "healthy", health.Status)
		assert.Equal(t, "up", health.Database)
	})
}
