package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/service"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "user not found", err: domain.ErrUserNotFound, want: http.StatusNotFound},
		{name: "blog not found", err: domain.ErrBlogNotFound, want: http.StatusNotFound},
		{name: "comment not found", err: domain.ErrCommentNotFound, want: http.StatusNotFound},
		{name: "forbidden", err: domain.ErrForbidden, want: http.StatusForbidden},
		{name: "user already exists", err: domain.ErrUserAlreadyExists, want: http.StatusConflict},
		{name: "tag already exists", err: domain.ErrTagAlreadyExists, want: http.StatusConflict},
		{name: "invalid credentials", err: domain.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "inactive user", err: domain.ErrUserInactive, want: http.StatusUnauthorized},
		{name: "empty title", err: domain.ErrBlogTitleEmpty, want: http.StatusUnprocessableEntity},
		{name: "comment length", err: domain.ErrCommentLength, want: http.StatusUnprocessableEntity},
		{name: "unknown tag", err: domain.ErrUnknownTag, want: http.StatusUnprocessableEntity},
		{name: "weak password", err: service.ErrInvalidPassword, want: http.StatusUnprocessableEntity},
		{name: "internal error", err: service.ErrInternalError, want: http.StatusInternalServerError},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := statusForError(tt.err)
			assert.Equal(t, tt.want, status)
		})
	}

	t.Run("wrapped errors keep their mapping", func(t *testing.T) {
		wrapped := fmt.Errorf("%w: tag %d", domain.ErrUnknownTag, 7)
		status, _ := statusForError(wrapped)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})
}
