package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/auth"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService *service.CommentService
	logger         zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *service.CommentService, logger zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger.With().Str("handler", "comment").Logger(),
	}
}

// ListByBlog handles GET /comments/blog/{id}.
func (h *CommentHandler) ListByBlog(w http.ResponseWriter, r *http.Request) {
	blogID, ok := idParam(r, "id")
	if !ok {
		writeBadRequest(w, "invalid blog id")
		return
	}

	limit, offset := paginationParams(r)

	out, err := h.commentService.ListByBlog(r.Context(), blogID, service.ListCommentsInput{Limit: limit, Offset: offset})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newListResponse(out.Comments, out.TotalCount, limit, offset))
}

// ListMine handles GET /comments/me: the authenticated user's own
// comments.
func (h *CommentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, auth.ErrMissingToken)
		return
	}

	limit, offset := paginationParams(r)

	out, err := h.commentService.ListByAuthor(r.Context(), actor.UserID, service.ListCommentsInput{Limit: limit, Offset: offset})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newListResponse(out.Comments, out.TotalCount, limit, offset))
}

// Get handles GET /comments/{id}.
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeBadRequest(w, "invalid comment id")
		return
	}

	comment, err := h.commentService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

type createCommentRequest struct {
	BlogID  int64  `json:"blog_id"`
	Content string `json:"content"`
}

// Create handles POST /comments.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, auth.ErrMissingToken)
		return
	}

	var req createCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	out, err := h.commentService.Create(r.Context(), service.CreateCommentInput{
		Actor:   actor,
		BlogID:  req.BlogID,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, out.Comment)
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

// Update handles PUT /comments/{id}. Only the comment's author may
// edit it.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeBadRequest(w, "invalid comment id")
		return
	}

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, auth.ErrMissingToken)
		return
	}

	var req updateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	out, err := h.commentService.Update(r.Context(), service.UpdateCommentInput{
		Actor:     actor,
		CommentID: id,
		Content:   req.Content,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Comment)
}

// Delete handles DELETE /comments/{id}. Admins delete any comment;
// other users only their own.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeBadRequest(w, "invalid comment id")
		return
	}

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, auth.ErrMissingToken)
		return
	}

	if err := h.commentService.Delete(r.Context(), actor, id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
