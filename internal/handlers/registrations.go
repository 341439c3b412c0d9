package handlers

import (
	"encoding/json"
	"net/http"

	"artloop/internal/models"
	"artloop/internal/services"

	"github.com/go-chi/chi/v5"
)

// RegistrationHandler exposes the registration and check-in flow
type RegistrationHandler struct {
	registrations *services.RegistrationService
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrations *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

// Create handles POST /api/registrations
func (h *RegistrationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.registrations.Register(&req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := Response{Success: true, Item: result}
	if !result.NotificationSent {
		// The registration stands; the caller learns the email did not go out
		resp.Details = "registration created but confirmation email could not be sent"
	}
	respondJSON(w, http.StatusCreated, resp)
}

// Get handles GET /api/registrations/{code}
func (h *RegistrationHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	reg, err := h.registrations.GetByCode(code)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondItem(w, http.StatusOK, reg)
}

// CheckIn handles POST /api/registrations/{code}/check-in
func (h *RegistrationHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	reg, err := h.registrations.CheckIn(code)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondItem(w, http.StatusOK, reg)
}

// ListByEvent handles GET /api/registrations?event=
func (h *RegistrationHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventTitle := r.URL.Query().Get("event")
	if eventTitle == "" {
		respondError(w, http.StatusBadRequest, "event query parameter is required")
		return
	}

	registrations, err := h.registrations.GetByEvent(eventTitle)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondItems(w, registrations, len(registrations))
}

// Stats handles GET /api/registrations/stats?event=
func (h *RegistrationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	eventTitle := r.URL.Query().Get("event")
	if eventTitle == "" {
		respondError(w, http.StatusBadRequest, "event query parameter is required")
		return
	}

	stats, err := h.registrations.GetEventStatistics(eventTitle)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondItem(w, http.StatusOK, stats)
}

// Verify handles GET /api/verify. The scanned URL's parameters are never
// trusted on their own: the code is looked up and the scanned email and
// quantity must match the stored record.
func (h *RegistrationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, err := services.ParseVerificationClaims(r.URL.Query())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	reg, err := h.registrations.Verify(claims)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondItem(w, http.StatusOK, reg)
}
