package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/auth"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/service"
)

// TagHandler handles tag endpoints.
type TagHandler struct {
	tagService *service.TagService
	logger     zerolog.Logger
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService *service.TagService, logger zerolog.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		logger:     logger.With().Str("handler", "tag").Logger(),
	}
}

// List handles GET /tags.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	out, err := h.tagService.List(r.Context(), service.ListTagsInput{Limit: limit, Offset: offset})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newListResponse(out.Tags, out.TotalCount, limit, offset))
}

// Get handles GET /tags/{id}.
func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeBadRequest(w, "invalid tag id")
		return
	}

	tag, err := h.tagService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, tag)
}

type createTagRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create handles POST /tags.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	out, err := h.tagService.Create(r.Context(), service.CreateTagInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, out.Tag)
}

type updateTagRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Update handles PUT /tags/{id}. Omitted fields are left unchanged.
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeBadRequest(w, "invalid tag id")
		return
	}

	var req updateTagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	out, err := h.tagService.Update(r.Context(), service.UpdateTagInput{
		TagID:       id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Tag)
}

// Delete handles DELETE /tags/{id} (admin only). Deleting a tag
// unlinks it from every blog.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeBadRequest(w, "invalid tag id")
		return
	}

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, auth.ErrMissingToken)
		return
	}

	if err := h.tagService.Delete(r.Context(), actor, id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
