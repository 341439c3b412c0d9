package services

import (
	"encoding/json"
	"fmt"
	"time"

	"artloop/internal/models"

	"github.com/google/uuid"
)

// EventService handles event management for organizers
type EventService struct {
	events EventRepositoryInterface
}

// NewEventService creates a new event service
func NewEventService(events EventRepositoryInterface) *EventService {
	return &EventService{events: events}
}

// Create validates and persists a new event
func (s *EventService) Create(req *models.EventCreateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	event := &models.Event{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Date:            req.Date,
		Time:            req.Time,
		Venue:           req.Venue,
		VenueAddress:    req.VenueAddress,
		Performer:       req.Performer,
		PerformerBio:    req.PerformerBio,
		Description:     req.Description,
		FullDescription: req.FullDescription,
		Image:           req.Image,
		Price:           req.Price,
		Capacity:        req.Capacity,
		DressCode:       req.DressCode,
		Includes:        req.Includes,
		HostEmail:       req.HostEmail,
		IsFree:          req.IsFree,
		InviteOnly:      req.InviteOnly,
		InviteCode:      req.InviteCode,
		Status:          models.EventActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if event.Price == "" {
		event.Price = "Free"
		event.IsFree = true
	}

	if err := s.events.Create(event); err != nil {
		return nil, err
	}

	return event, nil
}

// GetByID retrieves an event by ID
func (s *EventService) GetByID(id string) (*models.Event, error) {
	return s.events.GetByID(id)
}

// GetAll lists events matching the filters
func (s *EventService) GetAll(filters models.EventFilters) ([]*models.Event, error) {
	return s.events.GetAll(filters)
}

// Search finds active events matching the term
func (s *EventService) Search(term string) ([]*models.Event, error) {
	return s.events.Search(term)
}

// Update merges the provided fields over the stored event and writes it
// back. Fields absent from the payload keep their stored values; the id and
// registration counter never change through this path.
func (s *EventService) Update(id string, updates json.RawMessage) (*models.Event, error) {
	event, err := s.events.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(updates, event); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	event.ID = id
	event.UpdatedAt = time.Now()

	if err := s.events.Update(event); err != nil {
		return nil, err
	}

	return s.events.GetByID(id)
}

// Delete soft-deletes an event by marking it cancelled
func (s *EventService) Delete(id string) error {
	return s.events.SoftDelete(id)
}
