package services

import "log"

// MockEmailService logs messages instead of delivering them. Used in
// development when no Resend API key is configured, and in tests.
type MockEmailService struct{}

// NewMockEmailService creates a new mock email service
func NewMockEmailService() *MockEmailService {
	log.Println("Email service: using mock (no Resend API key provided)")
	return &MockEmailService{}
}

// Send logs the message instead of delivering it
func (s *MockEmailService) Send(to []string, subject, htmlBody string) error {
	log.Printf("Mock Email: to=%v subject=%q (%d bytes)", to, subject, len(htmlBody))
	return nil
}
