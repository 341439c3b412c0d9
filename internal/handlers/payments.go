package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"artloop/internal/models"
	"artloop/internal/services"
)

// PaymentHandler exposes payment intent creation for paid events
type PaymentHandler struct {
	payments services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateIntent handles POST /api/payments/intent
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req services.PaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	intent, err := h.payments.CreatePaymentIntent(&req)
	if err != nil {
		if models.IsValidationError(err) {
			respondServiceError(w, err)
			return
		}
		if strings.Contains(err.Error(), "not configured") {
			respondJSON(w, http.StatusInternalServerError, Response{
				Success: false,
				Error:   "payment provider not configured",
				Details: err.Error(),
			})
			return
		}
		respondServiceError(w, err)
		return
	}

	respondItem(w, http.StatusCreated, intent)
}
