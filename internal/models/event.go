package models

import "time"

// EventStatus represents the status of an event
type EventStatus string

const (
	EventActive    EventStatus = "active"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
	EventDraft     EventStatus = "draft"
)

// Event represents a hosted event in the marketplace. Deleting an event is a
// soft delete: status flips to cancelled and the document stays in the store.
type Event struct {
	ID                string      `json:"id"`
	Title             string      `json:"title"`
	Date              string      `json:"date"`
	Time              string      `json:"time"`
	Venue             string      `json:"venue"`
	VenueAddress      string      `json:"venueAddress,omitempty"`
	Performer         string      `json:"performer"`
	PerformerBio      string      `json:"performerBio,omitempty"`
	Description       string      `json:"description"`
	FullDescription   string      `json:"fullDescription,omitempty"`
	Image             string      `json:"image,omitempty"`
	Price             string      `json:"price"` // display string, may be "Free"
	Capacity          int         `json:"capacity,omitempty"`
	DressCode         string      `json:"dressCode,omitempty"`
	Includes          []string    `json:"includes,omitempty"`
	HostEmail         string      `json:"hostEmail,omitempty"`
	IsFree            bool        `json:"isFree"`
	InviteOnly        bool        `json:"inviteOnly"`
	InviteCode        string      `json:"inviteCode,omitempty"`
	Status            EventStatus `json:"status"`
	RegistrationCount int         `json:"registrationCount"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// EventCreateRequest represents the data needed to create a new event
type EventCreateRequest struct {
	Title           string   `json:"title"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	Venue           string   `json:"venue"`
	VenueAddress    string   `json:"venueAddress"`
	Performer       string   `json:"performer"`
	PerformerBio    string   `json:"performerBio"`
	Description     string   `json:"description"`
	FullDescription string   `json:"fullDescription"`
	Image           string   `json:"image"`
	Price           string   `json:"price"`
	Capacity        int      `json:"capacity"`
	DressCode       string   `json:"dressCode"`
	Includes        []string `json:"includes"`
	HostEmail       string   `json:"hostEmail"`
	IsFree          bool     `json:"isFree"`
	InviteOnly      bool     `json:"inviteOnly"`
	InviteCode      string   `json:"inviteCode"`
}

// Validate checks the required event fields
func (r *EventCreateRequest) Validate() error {
	var missing []string
	if r.Title == "" {
		missing = append(missing, "title")
	}
	if r.Date == "" {
		missing = append(missing, "date")
	}
	if r.Time == "" {
		missing = append(missing, "time")
	}
	if r.Venue == "" {
		missing = append(missing, "venue")
	}
	if r.Performer == "" {
		missing = append(missing, "performer")
	}
	if r.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// EventFilters narrow event listings
type EventFilters struct {
	Status   EventStatus
	Upcoming bool
}
