package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"artloop/internal/models"
)

// codeRetryAttempts bounds the retry loop for registration code collisions.
// With a 36^5 code space, collisions are rare enough that a handful of
// attempts is sufficient.
const codeRetryAttempts = 5

// RegistrationService orchestrates event registration: validation, code
// generation, persistence, verification link encoding and notification
// dispatch. Persistence comes first; everything after it is best-effort.
type RegistrationService struct {
	registrations RegistrationRepositoryInterface
	events        EventRepositoryInterface
	codes         CodeGenerator
	links         LinkEncoder
	mailer        *RegistrationMailer
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	registrations RegistrationRepositoryInterface,
	events EventRepositoryInterface,
	codes CodeGenerator,
	links LinkEncoder,
	mailer *RegistrationMailer,
) *RegistrationService {
	return &RegistrationService{
		registrations: registrations,
		events:        events,
		codes:         codes,
		links:         links,
		mailer:        mailer,
	}
}

// Register creates a registration for an event and emails the buyer and the
// host. A persisted registration is never rolled back: counter increments,
// QR rendering and email dispatch degrade without failing the operation.
func (s *RegistrationService) Register(req *models.RegistrationRequest) (*models.RegistrationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	reg := &models.Registration{
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		CustomerPhone:      req.CustomerPhone,
		EventID:            req.EventID,
		EventTitle:         req.EventTitle,
		EventDate:          req.EventDate,
		EventTime:          req.EventTime,
		EventVenue:         req.EventVenue,
		TicketQuantity:     req.TicketQuantity,
		Status:             models.RegistrationActive,
		CheckInStatus:      models.CheckInPending,
		NotificationStatus: models.NotificationPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.persistWithFreshCode(reg); err != nil {
		return nil, err
	}

	// Best-effort: the registration stands even if the counter update fails
	if reg.EventID != "" {
		if err := s.events.IncrementRegistrationCount(reg.EventID); err != nil {
			log.Printf("could not increment registration count for event %s: %v", reg.EventID, err)
		}
	}

	// Best-effort: a failed QR render degrades to a code-only confirmation
	verificationURL, qrCodeDataURL, err := s.links.Encode(reg)
	if err != nil {
		log.Printf("could not render verification QR for %s: %v", reg.RegistrationCode, err)
	}

	notificationSent := s.notify(reg, req.HostEmail, verificationURL, qrCodeDataURL)

	return &models.RegistrationResult{
		RegistrationCode: reg.RegistrationCode,
		VerificationURL:  verificationURL,
		QRCodeDataURL:    qrCodeDataURL,
		NotificationSent: notificationSent,
	}, nil
}

// persistWithFreshCode generates codes until one clears the store's unique
// key, up to codeRetryAttempts
func (s *RegistrationService) persistWithFreshCode(reg *models.Registration) error {
	for attempt := 0; attempt < codeRetryAttempts; attempt++ {
		code, err := s.codes.Generate()
		if err != nil {
			return fmt.Errorf("failed to generate registration code: %w", err)
		}

		reg.RegistrationCode = code
		err = s.registrations.Create(reg)
		if err == nil {
			return nil
		}
		if !errors.Is(err, models.ErrDuplicateCode) {
			return err
		}
		log.Printf("registration code collision on %s, retrying", code)
	}

	return fmt.Errorf("could not allocate a unique registration code after %d attempts: %w",
		codeRetryAttempts, models.ErrDuplicateCode)
}

// notify emails the buyer and the host, records the outcome on the
// registration, and reports whether all messages went out
func (s *RegistrationService) notify(reg *models.Registration, hostEmail, verificationURL, qrCodeDataURL string) bool {
	sent := true

	if err := s.mailer.SendRegistrationConfirmation(reg, verificationURL, qrCodeDataURL); err != nil {
		log.Printf("could not send confirmation email for %s: %v", reg.RegistrationCode, err)
		sent = false
	}
	if err := s.mailer.SendHostAlert(reg, hostEmail); err != nil {
		log.Printf("could not send host alert for %s: %v", reg.RegistrationCode, err)
		sent = false
	}

	status := models.NotificationSent
	if !sent {
		status = models.NotificationFailed
	}
	if err := s.registrations.SetNotificationStatus(reg.RegistrationCode, status); err != nil {
		log.Printf("could not record notification status for %s: %v", reg.RegistrationCode, err)
	} else {
		reg.NotificationStatus = status
	}

	return sent
}

// CheckIn marks a registration as used for venue entry. Checking in an
// already checked-in registration is a no-op that returns the stored record.
func (s *RegistrationService) CheckIn(code string) (*models.Registration, error) {
	return s.registrations.CheckIn(code, time.Now())
}

// GetByCode retrieves a single registration
func (s *RegistrationService) GetByCode(code string) (*models.Registration, error) {
	return s.registrations.GetByCode(code)
}

// GetByEvent lists registrations for an event title, newest first
func (s *RegistrationService) GetByEvent(eventTitle string) ([]*models.Registration, error) {
	return s.registrations.GetByEvent(eventTitle)
}

// GetEventStatistics aggregates registrations for an event
func (s *RegistrationService) GetEventStatistics(eventTitle string) (*models.EventStatistics, error) {
	registrations, err := s.registrations.GetByEvent(eventTitle)
	if err != nil {
		return nil, err
	}

	stats := &models.EventStatistics{Total: len(registrations)}
	for _, reg := range registrations {
		if reg.CheckInStatus == models.CheckedIn {
			stats.CheckedIn++
		} else {
			stats.Pending++
		}
		stats.TotalAttendees += reg.TicketQuantity
	}

	return stats, nil
}

// Verify confirms scanned verification claims against the stored
// registration. The scanned email and quantity must match the record;
// a QR code alone is not trusted.
func (s *RegistrationService) Verify(claims *VerificationClaims) (*models.Registration, error) {
	reg, err := s.registrations.GetByCode(claims.RegistrationCode)
	if err != nil {
		return nil, err
	}

	if reg.CustomerEmail != claims.CustomerEmail || reg.TicketQuantity != claims.TicketQuantity {
		return nil, models.ErrVerificationMismatch
	}

	return reg, nil
}
