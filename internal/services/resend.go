package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ResendConfig represents Resend email service configuration
type ResendConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// ResendEmailService delivers email via the Resend API
type ResendEmailService struct {
	config  ResendConfig
	client  *http.Client
	baseURL string
}

// NewResendEmailService creates a new Resend email service
func NewResendEmailService(config ResendConfig) *ResendEmailService {
	return &ResendEmailService{
		config:  config,
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: "https://api.resend.com",
	}
}

// resendEmailRequest represents the request structure for the Resend API
type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
}

// resendErrorResponse represents an error response from the Resend API
type resendErrorResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

// getFromField constructs the from field properly
func (s *ResendEmailService) getFromField() string {
	if s.config.FromName != "" {
		return fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}
	return s.config.FromEmail
}

// Send delivers an HTML message to the given recipients
func (s *ResendEmailService) Send(to []string, subject, htmlBody string) error {
	if s.config.APIKey == "" {
		return fmt.Errorf("resend API key is not configured")
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients provided")
	}

	payload, err := json.Marshal(resendEmailRequest{
		From:    s.getFromField(),
		To:      to,
		Subject: subject,
		HTML:    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		var apiErr resendErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("resend API error (%d): %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("resend API error (%d): %s", resp.StatusCode, string(body))
	}

	return nil
}
