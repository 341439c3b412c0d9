package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"artloop/internal/services"
)

// OrderHandler sends paid-order confirmation emails
type OrderHandler struct {
	mailer *services.RegistrationMailer
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(mailer *services.RegistrationMailer) *OrderHandler {
	return &OrderHandler{mailer: mailer}
}

// SendConfirmation handles POST /api/orders/confirmation
func (h *OrderHandler) SendConfirmation(w http.ResponseWriter, r *http.Request) {
	var order services.OrderConfirmation
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := order.Validate(); err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.mailer.SendOrderConfirmation(&order); err != nil {
		log.Printf("could not send order confirmation for %s: %v", order.OrderID, err)
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to send confirmation emails",
			Details: err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true})
}
