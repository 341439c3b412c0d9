package models

import (
	"errors"
	"strings"
)

// Common errors used throughout the application
var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrArtistNotFound       = errors.New("artist not found")
	ErrDuplicateCode        = errors.New("registration code already exists")
	ErrVerificationMismatch = errors.New("verification data does not match registration")
	ErrUnauthorized         = errors.New("unauthorized access")
	ErrInvalidInput         = errors.New("invalid input")
)

// ValidationError reports the missing or malformed fields of a request
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// IsValidationError reports whether err is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
