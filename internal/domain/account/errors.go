package account

import (
	"github.com/hirosato/go-bank-client/internal/domain/errors"
)

// Standard error definitions for the account domain
var (
	ErrDescriptionRequired  = errors.NewValidationError("Account description is required")
	ErrInvalidType          = errors.NewValidationError("Account type must be STANDARD or CREDIT")
	ErrInvalidBeginBalance  = errors.NewValidationError("Begin balance must be a non-negative amount")
	ErrCreditLineRequired   = errors.NewValidationError("Credit accounts require a credit line")
	ErrCreditLineNotAllowed = errors.NewValidationError("Standard accounts have no credit line")
	ErrInvalidCreditLine    = errors.NewValidationError("Credit line must be a non-negative amount")
	ErrBalanceNotZero       = errors.NewValidationError("Only accounts with a zero balance can be deleted")
	ErrAccountNotFound      = errors.NewNotFoundError("Account not found")
)
