package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"artloop/internal/models"
)

// Response is the JSON envelope returned by every endpoint
type Response struct {
	Success bool        `json:"success"`
	Item    interface{} `json:"item,omitempty"`
	Items   interface{} `json:"items,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details string      `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, resp interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondItem(w http.ResponseWriter, status int, item interface{}) {
	respondJSON(w, status, Response{Success: true, Item: item})
}

func respondItems(w http.ResponseWriter, items interface{}, count int) {
	respondJSON(w, http.StatusOK, Response{Success: true, Items: items, Count: &count})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{Success: false, Error: message})
}

// respondServiceError translates service errors into the envelope with
// conventional status codes. Store failures stay generic; validation and
// lookup failures surface their message.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case models.IsValidationError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrRegistrationNotFound),
		errors.Is(err, models.ErrEventNotFound),
		errors.Is(err, models.ErrArtistNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrVerificationMismatch):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
