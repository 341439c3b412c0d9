package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"artloop/internal/models"

	"github.com/lib/pq"
)

// RegistrationRepository handles registration data operations
type RegistrationRepository struct {
	db *sql.DB
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *sql.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

const registrationColumns = `registration_code, customer_name, customer_email, customer_phone,
	event_id, event_title, event_date, event_time, event_venue, ticket_quantity,
	status, check_in_status, check_in_time, notification_status, created_at, updated_at`

// Create persists a new registration keyed by its registration code.
// Returns models.ErrDuplicateCode when the code is already taken so the
// caller can retry with a fresh one.
func (r *RegistrationRepository) Create(reg *models.Registration) error {
	query := `
		INSERT INTO registrations (` + registrationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.Exec(
		query,
		reg.RegistrationCode,
		reg.CustomerName,
		reg.CustomerEmail,
		reg.CustomerPhone,
		reg.EventID,
		reg.EventTitle,
		reg.EventDate,
		reg.EventTime,
		reg.EventVenue,
		reg.TicketQuantity,
		reg.Status,
		reg.CheckInStatus,
		reg.CheckInTime,
		reg.NotificationStatus,
		reg.CreatedAt,
		reg.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return models.ErrDuplicateCode
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}

	return nil
}

// GetByCode retrieves a registration by its code
func (r *RegistrationRepository) GetByCode(code string) (*models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE registration_code = $1`

	reg, err := scanRegistration(r.db.QueryRow(query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}

	return reg, nil
}

// CheckIn transitions a pending registration to checked-in. The transition is
// guarded at the store: a registration that is already checked in is left
// untouched and returned as-is, so concurrent scans converge on one
// check-in time.
func (r *RegistrationRepository) CheckIn(code string, at time.Time) (*models.Registration, error) {
	query := `
		UPDATE registrations
		SET check_in_status = $2, check_in_time = $3, updated_at = $3
		WHERE registration_code = $1 AND check_in_status = $4
		RETURNING ` + registrationColumns

	reg, err := scanRegistration(r.db.QueryRow(query, code, models.CheckedIn, at, models.CheckInPending))
	if err == nil {
		return reg, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check in registration: %w", err)
	}

	// Either the code is unknown or the registration was already checked in.
	return r.GetByCode(code)
}

// GetByEvent returns all registrations for an event title, newest first
func (r *RegistrationRepository) GetByEvent(eventTitle string) ([]*models.Registration, error) {
	query := `SELECT ` + registrationColumns + `
		FROM registrations WHERE event_title = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, eventTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	var registrations []*models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		registrations = append(registrations, reg)
	}

	return registrations, rows.Err()
}

// SetNotificationStatus records the outcome of the confirmation email dispatch
func (r *RegistrationRepository) SetNotificationStatus(code string, status models.NotificationStatus) error {
	query := `UPDATE registrations SET notification_status = $2, updated_at = $3 WHERE registration_code = $1`

	result, err := r.db.Exec(query, code, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update notification status: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return models.ErrRegistrationNotFound
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRegistration(s scanner) (*models.Registration, error) {
	reg := &models.Registration{}
	var checkInTime sql.NullTime

	err := s.Scan(
		&reg.RegistrationCode,
		&reg.CustomerName,
		&reg.CustomerEmail,
		&reg.CustomerPhone,
		&reg.EventID,
		&reg.EventTitle,
		&reg.EventDate,
		&reg.EventTime,
		&reg.EventVenue,
		&reg.TicketQuantity,
		&reg.Status,
		&reg.CheckInStatus,
		&checkInTime,
		&reg.NotificationStatus,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if checkInTime.Valid {
		t := checkInTime.Time
		reg.CheckInTime = &t
	}

	return reg, nil
}
