package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"artloop/internal/models"
	"artloop/internal/services"

	"github.com/go-chi/chi/v5"
)

// EventHandler exposes event browsing and management
type EventHandler struct {
	events *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// List handles GET /api/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := models.EventFilters{
		Status:   models.EventStatus(r.URL.Query().Get("status")),
		Upcoming: r.URL.Query().Get("upcoming") == "true",
	}

	events, err := h.events.GetAll(filters)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondItems(w, events, len(events))
}

// Get handles GET /api/events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondItem(w, http.StatusOK, event)
}

// Search handles GET /api/events/search?q=
func (h *EventHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		respondError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}

	events, err := h.events.Search(term)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondItems(w, events, len(events))
}

// Create handles POST /api/events (admin)
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.EventCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.events.Create(&req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondItem(w, http.StatusCreated, event)
}

// Update handles PUT /api/events/{id} (admin)
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	updates, err := io.ReadAll(r.Body)
	if err != nil || len(updates) == 0 || !json.Valid(updates) {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.events.Update(chi.URLParam(r, "id"), updates)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondItem(w, http.StatusOK, event)
}

// Delete handles DELETE /api/events/{id} (admin). Events are soft-deleted.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.events.Delete(chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true})
}
