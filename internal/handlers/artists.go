package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"artloop/internal/models"
	"artloop/internal/services"

	"github.com/go-chi/chi/v5"
)

// ArtistHandler exposes artist browsing and management
type ArtistHandler struct {
	artists *services.ArtistService
}

// NewArtistHandler creates a new artist handler
func NewArtistHandler(artists *services.ArtistService) *ArtistHandler {
	return &ArtistHandler{artists: artists}
}

// List handles GET /api/artists
func (h *ArtistHandler) List(w http.ResponseWriter, r *http.Request) {
	status := models.ArtistStatus(r.URL.Query().Get("status"))

	artists, err := h.artists.GetAll(status)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondItems(w, artists, len(artists))
}

// Get handles GET /api/artists/{id}
func (h *ArtistHandler) Get(w http.ResponseWriter, r *http.Request) {
	artist, err := h.artists.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondItem(w, http.StatusOK, artist)
}

// Search handles GET /api/artists/search?q=
func (h *ArtistHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		respondError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}

	artists, err := h.artists.Search(term)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondItems(w, artists, len(artists))
}

// Create handles POST /api/artists (admin)
func (h *ArtistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ArtistCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	artist, err := h.artists.Create(&req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondItem(w, http.StatusCreated, artist)
}

// Update handles PUT /api/artists/{id} (admin)
func (h *ArtistHandler) Update(w http.ResponseWriter, r *http.Request) {
	updates, err := io.ReadAll(r.Body)
	if err != nil || len(updates) == 0 || !json.Valid(updates) {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	artist, err := h.artists.Update(chi.URLParam(r, "id"), updates)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondItem(w, http.StatusOK, artist)
}

// Delete handles DELETE /api/artists/{id} (admin). Profiles are soft-deleted.
func (h *ArtistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.artists.Delete(chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true})
}
