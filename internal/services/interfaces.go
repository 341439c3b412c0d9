package services

import (
	"time"

	"artloop/internal/models"
)

// RegistrationRepositoryInterface defines the store operations the
// registration service depends on
type RegistrationRepositoryInterface interface {
	Create(reg *models.Registration) error
	GetByCode(code string) (*models.Registration, error)
	CheckIn(code string, at time.Time) (*models.Registration, error)
	GetByEvent(eventTitle string) ([]*models.Registration, error)
	SetNotificationStatus(code string, status models.NotificationStatus) error
}

// EventRepositoryInterface defines the store operations for events
type EventRepositoryInterface interface {
	Create(event *models.Event) error
	GetByID(id string) (*models.Event, error)
	GetAll(filters models.EventFilters) ([]*models.Event, error)
	Search(term string) ([]*models.Event, error)
	Update(event *models.Event) error
	SoftDelete(id string) error
	IncrementRegistrationCount(id string) error
}

// ArtistRepositoryInterface defines the store operations for artist profiles
type ArtistRepositoryInterface interface {
	Create(artist *models.Artist) error
	GetByID(id string) (*models.Artist, error)
	GetAll(status models.ArtistStatus) ([]*models.Artist, error)
	Search(term string) ([]*models.Artist, error)
	Update(artist *models.Artist) error
	SoftDelete(id string) error
}

// CodeGenerator produces registration codes. Uniqueness is the caller's
// responsibility, enforced at write time against the store's primary key.
type CodeGenerator interface {
	Generate() (string, error)
}

// LinkEncoder builds a verification URL for a registration and renders it as
// a scannable QR image
type LinkEncoder interface {
	Encode(reg *models.Registration) (verificationURL, qrCodeDataURL string, err error)
}

// NotificationSender delivers a rendered message to a list of recipients
type NotificationSender interface {
	Send(to []string, subject, htmlBody string) error
}

// PaymentService creates payment intents for paid events
type PaymentService interface {
	CreatePaymentIntent(req *PaymentIntentRequest) (*PaymentIntent, error)
}
