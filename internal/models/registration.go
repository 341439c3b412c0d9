package models

import (
	"regexp"
	"time"
)

// RegistrationStatus represents the lifecycle status of a registration
type RegistrationStatus string

const (
	RegistrationActive    RegistrationStatus = "active"
	RegistrationCancelled RegistrationStatus = "cancelled"
	RegistrationCompleted RegistrationStatus = "completed"
)

// CheckInStatus represents whether a registration has been used for entry
type CheckInStatus string

const (
	CheckInPending CheckInStatus = "pending"
	CheckedIn      CheckInStatus = "checked-in"
)

// NotificationStatus records the outcome of the confirmation email dispatch
// so a degraded registration stays observable.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// RegistrationCodePattern matches valid registration codes
var RegistrationCodePattern = regexp.MustCompile(`^[A-Z0-9]{5}$`)

// Registration binds a ticket buyer to an event, identified by a short code.
// Event fields are a snapshot taken at registration time and are intentionally
// not kept in sync with later event edits.
type Registration struct {
	RegistrationCode   string             `json:"registrationCode"`
	CustomerName       string             `json:"customerName"`
	CustomerEmail      string             `json:"customerEmail"`
	CustomerPhone      string             `json:"customerPhone,omitempty"`
	EventID            string             `json:"eventId,omitempty"`
	EventTitle         string             `json:"eventTitle"`
	EventDate          string             `json:"eventDate,omitempty"`
	EventTime          string             `json:"eventTime,omitempty"`
	EventVenue         string             `json:"eventVenue,omitempty"`
	TicketQuantity     int                `json:"ticketQuantity"`
	Status             RegistrationStatus `json:"status"`
	CheckInStatus      CheckInStatus      `json:"checkInStatus"`
	CheckInTime        *time.Time         `json:"checkInTime"`
	NotificationStatus NotificationStatus `json:"notificationStatus"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// RegistrationRequest represents a request to register for an event
type RegistrationRequest struct {
	CustomerName   string `json:"customerName"`
	CustomerEmail  string `json:"customerEmail"`
	CustomerPhone  string `json:"customerPhone"`
	EventID        string `json:"eventId"`
	EventTitle     string `json:"eventTitle"`
	EventDate      string `json:"eventDate"`
	EventTime      string `json:"eventTime"`
	EventVenue     string `json:"eventVenue"`
	TicketQuantity int    `json:"ticketQuantity"`
	HostEmail      string `json:"hostEmail"`
}

// Validate checks the required registration fields
func (r *RegistrationRequest) Validate() error {
	var missing []string
	if r.CustomerName == "" {
		missing = append(missing, "customerName")
	}
	if r.CustomerEmail == "" {
		missing = append(missing, "customerEmail")
	}
	if r.EventTitle == "" {
		missing = append(missing, "eventTitle")
	}
	if r.TicketQuantity <= 0 {
		missing = append(missing, "ticketQuantity")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// RegistrationResult is returned to the caller after a successful registration
type RegistrationResult struct {
	RegistrationCode string `json:"registrationCode"`
	VerificationURL  string `json:"verificationURL,omitempty"`
	QRCodeDataURL    string `json:"qrCodeDataURL,omitempty"`
	NotificationSent bool   `json:"notificationSent"`
}

// EventStatistics aggregates registrations for a single event
type EventStatistics struct {
	Total          int `json:"total"`
	CheckedIn      int `json:"checkedIn"`
	Pending        int `json:"pending"`
	TotalAttendees int `json:"totalAttendees"`
}
