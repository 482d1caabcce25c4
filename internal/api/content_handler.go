package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/learning-tracks/internal/service"
)

// ContentHandler handles HTTP requests for content
type ContentHandler struct {
	contentService *service.ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// Routes returns the routes for content
func (h *ContentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateContent)
	r.Get("/", h.ListContents)
	r.Get("/{id}", h.GetContent)
	r.Patch("/{id}", h.UpdateContent)
	r.Delete("/{id}", h.DeleteContent)

	return r
}

// CreateContentRequest is the request body for creating a content
type CreateContentRequest struct {
	VideoID string    `json:"videoId" validate:"required"`
	Tracks  *[]string `json:"tracks" validate:"omitnil,min=1,dive,required"`
}

// UpdateContentRequest is the request body for updating a content
type UpdateContentRequest struct {
	Completed *bool     `json:"completed" validate:"required"`
	Tracks    *[]string `json:"tracks" validate:"omitnil,min=1,dive,required"`
}

func deref(s *[]string) []string {
	if s == nil {
		return nil
	}
	return *s
}

// CreateContent resolves a video and stores it with its tracks
func (h *ContentHandler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req CreateContentRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	content, err := h.contentService.Create(r.Context(), service.CreateContentRequest{
		VideoID: req.VideoID,
		Tracks:  deref(req.Tracks),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, content)
}

// ListContents searches contents by title and description
func (h *ContentHandler) ListContents(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	page, err := h.contentService.List(r.Context(), service.ListRequest{
		Query:      q.Query,
		PageNumber: q.PageNumber,
		PageSize:   q.PageSize,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, page)
}

// GetContent returns a content with its tracks
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	content, err := h.contentService.Get(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, content)
}

// UpdateContent toggles completion and attaches tracks
func (h *ContentHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req UpdateContentRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	content, err := h.contentService.Update(r.Context(), id, service.UpdateContentRequest{
		Completed: *req.Completed,
		Tracks:    deref(req.Tracks),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, content)
}

// DeleteContent deletes a content
func (h *ContentHandler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := h.contentService.Delete(r.Context(), id); err != nil {
		renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
