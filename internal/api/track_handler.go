package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/learning-tracks/internal/domain"
	"github.com/tendant/learning-tracks/internal/service"
)

// TrackHandler handles HTTP requests for tracks
type TrackHandler struct {
	trackService *service.TrackService
}

// NewTrackHandler creates a new track handler
func NewTrackHandler(trackService *service.TrackService) *TrackHandler {
	return &TrackHandler{trackService: trackService}
}

// Routes returns the routes for tracks
func (h *TrackHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateTracks)
	r.Get("/", h.ListTracks)
	r.Get("/{id}", h.GetTrack)
	r.Patch("/{id}", h.RenameTrack)
	r.Delete("/{id}", h.DeleteTrack)

	return r
}

// RenameTrackRequest is the request body for renaming a track
type RenameTrackRequest struct {
	Name string `json:"name" validate:"required"`
}

// TrackRef is one resolved label
type TrackRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateTracks upserts a JSON array of labels
func (h *TrackHandler) CreateTracks(w http.ResponseWriter, r *http.Request) {
	var names []string
	if err := render.DecodeJSON(r.Body, &names); err != nil {
		renderError(w, r, &domain.ValidationError{Violations: []domain.Violation{
			{Field: "body", Message: "request body must be a JSON array of track names"},
		}})
		return
	}
	if err := validateVar("tracks", names, "min=1,dive,required"); err != nil {
		renderError(w, r, err)
		return
	}

	tracks, err := h.trackService.Create(r.Context(), names)
	if err != nil {
		renderError(w, r, err)
		return
	}

	refs := make([]TrackRef, 0, len(tracks))
	for _, t := range tracks {
		refs = append(refs, TrackRef{ID: t.ID, Name: t.Name})
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, refs)
}

// ListTracks searches tracks by name
func (h *TrackHandler) ListTracks(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	page, err := h.trackService.List(r.Context(), service.ListRequest{
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

// GetTrack returns a track by ID
func (h *TrackHandler) GetTrack(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	track, err := h.trackService.Get(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, track)
}

// RenameTrack changes a track's name
func (h *TrackHandler) RenameTrack(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req RenameTrackRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	if err := h.trackService.Rename(r.Context(), id, req.Name); err != nil {
		renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTrack deletes a track and its links
func (h *TrackHandler) DeleteTrack(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := h.trackService.Delete(r.Context(), id); err != nil {
		renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
