package services

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"artloop/internal/models"

	qrcode "github.com/skip2/go-qrcode"
)

// qrImageSize is the edge length of the rendered QR image in pixels
const qrImageSize = 300

// VerificationLinkEncoder builds self-contained verification URLs and renders
// them as QR images door staff can scan.
type VerificationLinkEncoder struct {
	baseURL string
}

// NewVerificationLinkEncoder creates a link encoder rooted at the public site URL
func NewVerificationLinkEncoder(baseURL string) *VerificationLinkEncoder {
	return &VerificationLinkEncoder{baseURL: strings.TrimRight(baseURL, "/")}
}

// Encode builds the verification URL for a registration and renders it into a
// base64 PNG data URI. Optional fields are included only when present;
// the verification endpoint tolerates their absence.
func (e *VerificationLinkEncoder) Encode(reg *models.Registration) (string, string, error) {
	params := url.Values{}
	params.Set("code", reg.RegistrationCode)
	params.Set("email", reg.CustomerEmail)
	params.Set("quantity", strconv.Itoa(reg.TicketQuantity))
	if reg.CustomerName != "" {
		params.Set("name", reg.CustomerName)
	}
	if reg.EventTitle != "" {
		params.Set("event", reg.EventTitle)
	}
	if reg.EventDate != "" {
		params.Set("date", reg.EventDate)
	}
	if reg.EventTime != "" {
		params.Set("time", reg.EventTime)
	}
	if reg.EventVenue != "" {
		params.Set("venue", reg.EventVenue)
	}

	verificationURL := e.baseURL + "/verify?" + params.Encode()

	png, err := qrcode.Encode(verificationURL, qrcode.Medium, qrImageSize)
	if err != nil {
		return verificationURL, "", fmt.Errorf("failed to render QR code: %w", err)
	}

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	return verificationURL, dataURL, nil
}

// VerificationClaims are the fields a scanned verification URL asserts about
// a registration
type VerificationClaims struct {
	RegistrationCode string
	CustomerEmail    string
	TicketQuantity   int
	CustomerName     string
	EventTitle       string
	EventDate        string
	EventTime        string
	EventVenue       string
}

// ParseVerificationClaims extracts verification claims from a scanned URL's
// query parameters. code, email and quantity are required; quantity must be
// a positive integer.
func ParseVerificationClaims(params url.Values) (*VerificationClaims, error) {
	var missing []string
	if params.Get("code") == "" {
		missing = append(missing, "code")
	}
	if params.Get("email") == "" {
		missing = append(missing, "email")
	}
	if params.Get("quantity") == "" {
		missing = append(missing, "quantity")
	}
	if len(missing) > 0 {
		return nil, &models.ValidationError{Fields: missing}
	}

	quantity, err := strconv.Atoi(params.Get("quantity"))
	if err != nil || quantity <= 0 {
		return nil, &models.ValidationError{Fields: []string{"quantity"}}
	}

	return &VerificationClaims{
		RegistrationCode: params.Get("code"),
		CustomerEmail:    params.Get("email"),
		TicketQuantity:   quantity,
		CustomerName:     params.Get("name"),
		EventTitle:       params.Get("event"),
		EventDate:        params.Get("date"),
		EventTime:        params.Get("time"),
		EventVenue:       params.Get("venue"),
	}, nil
}
