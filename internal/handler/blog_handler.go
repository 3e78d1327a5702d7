package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/auth"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/service"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/storage"
)

// BlogHandler handles blog endpoints.
type BlogHandler struct {
	blogService   *service.BlogService
	blobStore     storage.BlobStore
	maxUploadSize int64
	logger        zerolog.Logger
}

// NewBlogHandler creates a new BlogHandler. blobStore may be nil, in
// which case blog image uploads are rejected.
func NewBlogHandler(blogService *service.BlogService, blobStore storage.BlobStore, maxUploadSize int64, logger zerolog.Logger) *BlogHandler {
	return &BlogHandler{
		blogService:   blogService,
		blobStore:     blobStore,
		maxUploadSize: maxUploadSize,
		logger:        logger.With().Str("handler", "blog").Logger(),
	}
}

// ListPublished handles GET /blogs: published blogs only, paginated.
func (h *BlogHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	out, err := h.blogService.ListPublished(r.Context(), service.ListBlogsInput{Limit: limit, Offset: offset})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newListResponse(out.Blogs, out.TotalCount, limit, offset))
}

// ListAll handles GET /blogs/all (admin only): every blog including
// drafts.
func (h *BlogHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, auth.ErrMissingToken)
		return
	}

	limit, offset := paginationParams(r)

	out, err := h.blogService.List(r.Context(), actor, service.ListBlogsInput{Limit: limit, Offset: offset})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newListResponse(out.Blogs, out.TotalCount, limit, offset))
}

// ListByAuthor handles GET /blogs/user/{id}. The author themselves
// and admins see drafts; everyone else sees published blogs only.
func (h *BlogHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, ok := idParam(r, "id")
	if !ok {
		writeBadRequest(w, "invalid user id")
		return
	}

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		actor = auth.GuestActor()
	}

	limit, offset := paginationParams(r)

	out, err := h.blogService.ListByAuthor(r.Context(), actor, authorID, service.ListBlogsInput{Limit: limit, Offset: offset})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newListResponse(out.Blogs, out.TotalCount, limit, offset))
}

// Stats handles GET /blogs/stats.
func (h *BlogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.blogService.Stats(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Get handles GET /blogs/{id}.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeBadRequest(w, "invalid blog id")
		return
	}

	blog, err := h.blogService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

type createBlogRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	ImageURL string  `json:"image_url"`
	TagIDs   []int64 `json:"tag_ids"`
}

// Create handles POST /blogs. New blogs start as drafts.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, auth.ErrMissingToken)
		return
	}

	var req createBlogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	out, err := h.blogService.Create(r.Context(), service.CreateBlogInput{
		Actor:    actor,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		TagIDs:   req.TagIDs,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, out.Blog)
}

type updateBlogRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url"`
	TagIDs   []int64 `json:"tag_ids"`
}

// Update handles PUT /blogs/{id}. Omitted fields are left unchanged;
// a present tag_ids replaces the blog's tag set, with [] clearing it.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeBadRequest(w, "invalid blog id")
		return
	}

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, auth.ErrMissingToken)
		return
	}

	var req updateBlogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	out, err := h.blogService.Update(r.Context(), service.UpdateBlogInput{
		Actor:    actor,
		BlogID:   id,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		TagIDs:   req.TagIDs,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Blog)
}

// SetPublished handles PATCH /blogs/{id}/publish. The body is
// {"is_published": bool}.
func (h *BlogHandler) SetPublished(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeBadRequest(w, "invalid blog id")
		return
	}

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, auth.ErrMissingToken)
		return
	}

	var req struct {
		IsPublished *bool `json:"is_published"`
	}
	if err := decodeJSON(r, &req); err != nil || req.IsPublished == nil {
		writeBadRequest(w, "invalid request body: is_published is required")
		return
	}

	if err := h.blogService.SetPublished(r.Context(), actor, id, *req.IsPublished); err != nil {
		writeError(w, h.logger, err)
		return
	}

	blog, err := h.blogService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

// UploadImage handles PUT /blogs/{id}/image with a multipart form
// carrying an "image" file. The previous image blob is deleted after
// the new URL is stored.
func (h *BlogHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.blobStore == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: "image storage is not configured", Code: "not_configured"})
		return
	}

	id, ok := idParam(r, "id")
	if !ok {
		writeBadRequest(w, "invalid blog id")
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

	file, header, err := r.FormFile("image")
	if err != nil {
		writeBadRequest(w, "missing image file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	url, err := h.blobStore.Upload(r.Context(), "blogs", header.Filename, contentType, file)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	previous, err := h.blogService.UpdateImage(r.Context(), actor, id, url)
	if err != nil {
		if delErr := h.blobStore.Delete(r.Context(), url); delErr != nil {
			h.logger.Warn().Err(delErr).Str("url", url).Msg("failed to delete orphaned upload")
		}
		writeError(w, h.logger, err)
		return
	}

	if previous != "" {
		if err := h.blobStore.Delete(r.Context(), previous); err != nil {
			h.logger.Warn().Err(err).Str("url", previous).Msg("failed to delete previous blog image")
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"image_url": url})
}

// Delete handles DELETE /blogs/{id}. Deleting a blog removes its
// comments and tag links.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeBadRequest(w, "invalid blog id")
		return
	}

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, auth.ErrMissingToken)
		return
	}

	if err := h.blogService.Delete(r.Context(), actor, id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
