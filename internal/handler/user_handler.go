package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/auth"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/service"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/storage"
)

// UserHandler handles user profile endpoints.
type UserHandler struct {
	userService   *service.UserService
	blobStore     storage.BlobStore
	maxUploadSize int64
	logger        zerolog.Logger
}

// NewUserHandler creates a new UserHandler. blobStore may be nil, in
// which case profile picture uploads are rejected.
func NewUserHandler(userService *service.UserService, blobStore storage.BlobStore, maxUploadSize int64, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService:   userService,
		blobStore:     blobStore,
		maxUploadSize: maxUploadSize,
		logger:        logger.With().Str("handler", "user").Logger(),
	}
}

// List handles GET /users (admin only, guarded by the router).
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	out, err := h.userService.List(r.Context(), service.ListUsersInput{Limit: limit, Offset: offset})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newListResponse(out.Users, out.TotalCount, limit, offset))
}

// Me handles GET /users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, auth.ErrMissingToken)
		return
	}

	user, err := h.userService.GetByID(r.Context(), actor.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeBadRequest(w, "invalid user id")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	LastName *string `json:"last_name"`
}

// Update handles PUT /users/{id}. Only the user themselves or an
// admin may update; the service enforces the policy.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeBadRequest(w, "invalid user id")
		return
	}

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, auth.ErrMissingToken)
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	out, err := h.userService.Update(r.Context(), service.UpdateUserInput{
		Actor:    actor,
		UserID:   id,
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
		LastName: req.LastName,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, out.User)
}

// Delete handles DELETE /users/{id}. Deleting a user removes their
// blogs and comments too.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeBadRequest(w, "invalid user id")
		return
	}

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, auth.ErrMissingToken)
		return
	}

	if err := h.userService.Delete(r.Context(), actor, id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadPicture handles PUT /users/me/picture with a multipart form
// carrying a "picture" file. The previous picture blob is deleted
// after the new URL is stored.
func (h *UserHandler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	if h.blobStore == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: "image storage is not configured", Code: "not_configured"})
		return
	}

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, auth.ErrMissingToken)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeBadRequest(w, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		writeBadRequest(w, "missing picture file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	url, err := h.blobStore.Upload(r.Context(), "users", header.Filename, contentType, file)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	previous, err := h.userService.UpdateProfilePicture(r.Context(), actor.UserID, url)
	if err != nil {
		// Best effort: don't leave the orphaned upload behind.
		if delErr := h.blobStore.Delete(r.Context(), url); delErr != nil {
			h.logger.Warn().Err(delErr).Str("url", url).Msg("failed to delete orphaned upload")
		}
		writeError(w, h.logger, err)
		return
	}

	if previous != "" {
		if err := h.blobStore.Delete(r.Context(), previous); err != nil {
			h.logger.Warn().Err(err).Str("url", previous).Msg("failed to delete previous profile picture")
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"profile_picture": url})
}

// SetActive handles PATCH /users/{id}/active (admin only). The body
// is {"is_active": bool}.
func (h *UserHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeBadRequest(w, "invalid user id")
		return
	}

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, auth.ErrMissingToken)
		return
	}

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := decodeJSON(r, &req); err != nil || req.IsActive == nil {
		writeBadRequest(w, "invalid request body: is_active is required")
		return
	}

	if err := h.userService.SetActive(r.Context(), actor, id, *req.IsActive); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info().Int64("user_id", id).Bool("is_active", *req.IsActive).
		Int64("admin_id", actor.UserID).Msg("user active status changed")

	w.WriteHeader(http.StatusNoContent)
}
