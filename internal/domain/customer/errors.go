package customer

import (
	"github.com/hirosato/go-bank-client/internal/domain/errors"
)

// Standard error definitions for the customer domain
var (
	ErrInvalidCredentials = errors.NewAuthenticationError("Incorrect email or password")
	ErrFormIncomplete     = errors.NewValidationError("Please complete all fields correctly")
	ErrSubmitInProgress   = errors.NewValidationError("Registration already in progress")
	ErrRegistrationClosed = errors.NewValidationError("Registration form is closed")
)

// fieldError returns a validation error attributed to a form field
func fieldError(field, message string) error {
	return errors.NewValidationError(message).WithDetail("field", field)
}
