package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"artloop/internal/models"
)

// StripeConfig represents Stripe payment service configuration
type StripeConfig struct {
	SecretKey      string
	PublishableKey string
}

// StripeService creates payment intents via the Stripe API
type StripeService struct {
	config  StripeConfig
	client  *http.Client
	baseURL string
}

// NewStripeService creates a new Stripe payment service
func NewStripeService(config StripeConfig) *StripeService {
	return &StripeService{
		config:  config,
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: "https://api.stripe.com",
	}
}

// PaymentIntentRequest represents a payment intent creation request
type PaymentIntentRequest struct {
	Amount         int64  `json:"amount"` // Amount in cents
	Currency       string `json:"currency"`
	EventTitle     string `json:"eventTitle"`
	TicketQuantity int    `json:"ticketQuantity"`
	CustomerEmail  string `json:"customerEmail"`
}

// Validate checks the payment intent request fields
func (r *PaymentIntentRequest) Validate() error {
	var missing []string
	if r.Amount <= 0 {
		missing = append(missing, "amount")
	}
	if r.CustomerEmail == "" {
		missing = append(missing, "customerEmail")
	}
	if len(missing) > 0 {
		return &models.ValidationError{Fields: missing}
	}
	return nil
}

// PaymentIntent represents a created payment intent
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// stripePaymentIntent mirrors the fields we use from the Stripe API response
type stripePaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// stripeErrorResponse mirrors the Stripe API error envelope
type stripeErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// CreatePaymentIntent creates a Stripe payment intent for a ticket purchase
func (s *StripeService) CreatePaymentIntent(req *PaymentIntentRequest) (*PaymentIntent, error) {
	if s.config.SecretKey == "" {
		return nil, fmt.Errorf("payment provider not configured: stripe secret key is missing")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	// Stripe takes form-encoded bodies
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	form.Set("currency", currency)
	form.Set("receipt_email", req.CustomerEmail)
	form.Set("automatic_payment_methods[enabled]", "true")
	if req.EventTitle != "" {
		form.Set("metadata[eventTitle]", req.EventTitle)
	}
	if req.TicketQuantity > 0 {
		form.Set("metadata[ticketQuantity]", strconv.Itoa(req.TicketQuantity))
	}
	form.Set("metadata[customerEmail]", req.CustomerEmail)

	httpReq, err := http.NewRequest(http.MethodPost, s.baseURL+"/v1/payment_intents",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.config.SecretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read payment intent response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr stripeErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("stripe API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("stripe API error (%d)", resp.StatusCode)
	}

	var intent stripePaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to decode payment intent response: %w", err)
	}

	return &PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     intent.Currency,
		Status:       intent.Status,
	}, nil
}
