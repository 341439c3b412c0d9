package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"artloop/internal/models"
)

// EventRepository handles event data operations
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, date, time, venue, venue_address, performer, performer_bio,
	description, full_description, image, price, capacity, dress_code, includes,
	host_email, is_free, invite_only, invite_code, status, registration_count,
	created_at, updated_at`

// Create persists a new event
func (r *EventRepository) Create(event *models.Event) error {
	includes, err := json.Marshal(event.Includes)
	if err != nil {
		return fmt.Errorf("failed to encode includes: %w", err)
	}

	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23)`

	_, err = r.db.Exec(
		query,
		event.ID,
		event.Title,
		event.Date,
		event.Time,
		event.Venue,
		event.VenueAddress,
		event.Performer,
		event.PerformerBio,
		event.Description,
		event.FullDescription,
		event.Image,
		event.Price,
		event.Capacity,
		event.DressCode,
		includes,
		event.HostEmail,
		event.IsFree,
		event.InviteOnly,
		event.InviteCode,
		event.Status,
		event.RegistrationCount,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(id string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// GetAll returns events matching the given filters, soonest first
func (r *EventRepository) GetAll(filters models.EventFilters) ([]*models.Event, error) {
	status := filters.Status
	if status == "" {
		status = models.EventActive
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE status = $1`
	args := []interface{}{status}

	if filters.Upcoming {
		query += ` AND date >= $2`
		args = append(args, time.Now().Format("2006-01-02"))
	}
	query += ` ORDER BY date ASC`

	return r.queryEvents(query, args...)
}

// Search finds active events whose title, performer, description or venue
// contains the search term
func (r *EventRepository) Search(term string) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE status = $1 AND (
			title ILIKE $2 OR performer ILIKE $2 OR description ILIKE $2 OR venue ILIKE $2
		) ORDER BY date ASC`

	return r.queryEvents(query, models.EventActive, "%"+term+"%")
}

// Update writes back a merged event document
func (r *EventRepository) Update(event *models.Event) error {
	includes, err := json.Marshal(event.Includes)
	if err != nil {
		return fmt.Errorf("failed to encode includes: %w", err)
	}

	query := `
		UPDATE events SET
			title = $2, date = $3, time = $4, venue = $5, venue_address = $6,
			performer = $7, performer_bio = $8, description = $9, full_description = $10,
			image = $11, price = $12, capacity = $13, dress_code = $14, includes = $15,
			host_email = $16, is_free = $17, invite_only = $18, invite_code = $19,
			status = $20, updated_at = $21
		WHERE id = $1`

	result, err := r.db.Exec(
		query,
		event.ID,
		event.Title,
		event.Date,
		event.Time,
		event.Venue,
		event.VenueAddress,
		event.Performer,
		event.PerformerBio,
		event.Description,
		event.FullDescription,
		event.Image,
		event.Price,
		event.Capacity,
		event.DressCode,
		includes,
		event.HostEmail,
		event.IsFree,
		event.InviteOnly,
		event.InviteCode,
		event.Status,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return models.ErrEventNotFound
	}

	return nil
}

// SoftDelete marks an event as cancelled without removing it
func (r *EventRepository) SoftDelete(id string) error {
	query := `UPDATE events SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(query, id, models.EventCancelled, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return models.ErrEventNotFound
	}

	return nil
}

// IncrementRegistrationCount bumps the denormalized registration counter.
// The increment happens in the database so concurrent registrations cannot
// lose updates.
func (r *EventRepository) IncrementRegistrationCount(id string) error {
	query := `UPDATE events SET registration_count = registration_count + 1, updated_at = $2 WHERE id = $1`

	result, err := r.db.Exec(query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to increment registration count: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return models.ErrEventNotFound
	}

	return nil
}

func (r *EventRepository) queryEvents(query string, args ...interface{}) ([]*models.Event, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func scanEvent(s scanner) (*models.Event, error) {
	event := &models.Event{}
	var includes []byte

	err := s.Scan(
		&event.ID,
		&event.Title,
		&event.Date,
		&event.Time,
		&event.Venue,
		&event.VenueAddress,
		&event.Performer,
		&event.PerformerBio,
		&event.Description,
		&event.FullDescription,
		&event.Image,
		&event.Price,
		&event.Capacity,
		&event.DressCode,
		&includes,
		&event.HostEmail,
		&event.IsFree,
		&event.InviteOnly,
		&event.InviteCode,
		&event.Status,
		&event.RegistrationCount,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(includes) > 0 {
		if err := json.Unmarshal(includes, &event.Includes); err != nil {
			return nil, fmt.Errorf("failed to decode includes: %w", err)
		}
	}

	return event, nil
}
