package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResendSend(t *testing.T) {
	var captured resendEmailRequest
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"id": "email-id"}`))
	}))
	defer server.Close()

	svc := NewResendEmailService(ResendConfig{
		APIKey:    "re_test_123",
		FromEmail: "noreply@artloop.com",
		FromName:  "ArtLoop",
	})
	svc.baseURL = server.URL

	err := svc.Send([]string{"jane@x.com"}, "Registration Confirmation", "<p>hi</p>")
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test_123", authHeader)
	assert.Equal(t, "ArtLoop <noreply@artloop.com>", captured.From)
	assert.Equal(t, []string{"jane@x.com"}, captured.To)
	assert.Equal(t, "Registration Confirmation", captured.Subject)
	assert.Equal(t, "<p>hi</p>", captured.HTML)
}

func TestResendSendWithoutAPIKey(t *testing.T) {
	svc := NewResendEmailService(ResendConfig{FromEmail: "noreply@artloop.com"})

	err := svc.Send([]string{"jane@x.com"}, "subject", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestResendSendWithoutRecipients(t *testing.T) {
	svc := NewResendEmailService(ResendConfig{APIKey: "re_test_123"})

	err := svc.Send(nil, "subject", "body")
	assert.Error(t, err)
}

func TestResendSendSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": "Invalid from address", "name": "validation_error"}`))
	}))
	defer server.Close()

	svc := NewResendEmailService(ResendConfig{APIKey: "re_test_123", FromEmail: "bad"})
	svc.baseURL = server.URL

	err := svc.Send([]string{"jane@x.com"}, "subject", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid from address")
}
