package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/auth"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/service"
)

// listResponse is the envelope for paginated collection endpoints.
type listResponse[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// newListResponse wraps items in the list envelope, normalizing a nil
// slice to an empty one so the JSON items field is never null.
func newListResponse[T any](items []T, total int64, limit, offset int) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, TotalCount: total, Limit: limit, Offset: offset}
}

// errorResponse is the JSON body returned for all error statuses.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps domain and service errors onto HTTP status codes and
// writes a JSON error body. Unknown errors become 500 without leaking
// internal detail.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	status, code := statusForError(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
		msg = "internal server error"
	}

	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrBlogNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, "not_found"

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"

	case errors.Is(err, domain.ErrUserAlreadyExists),
		errors.Is(err, domain.ErrTagAlreadyExists):
		return http.StatusConflict, "already_exists"

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUserInactive),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, "unauthorized"

	case errors.Is(err, domain.ErrBlogTitleEmpty),
		errors.Is(err, domain.ErrBlogContentEmpty),
		errors.Is(err, domain.ErrTagNameLength),
		errors.Is(err, domain.ErrTagDescriptionLength),
		errors.Is(err, domain.ErrCommentLength),
		errors.Is(err, domain.ErrUnknownTag),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidEmail):
		return http.StatusUnprocessableEntity, "invalid"

	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeBadRequest writes a 400 for malformed request bodies and parameters.
func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg, Code: "bad_request"})
}
