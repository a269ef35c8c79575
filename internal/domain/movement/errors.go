package movement

import (
	"github.com/hirosato/go-bank-client/internal/domain/errors"
)

// Standard error definitions for the movement domain
var (
	ErrInsufficientFunds   = errors.NewValidationError("Insufficient funds")
	ErrCreditLimitExceeded = errors.NewValidationError("Credit limit exceeded")
	ErrImmutableMovement   = errors.NewValidationError("Persisted movements cannot be edited")
	ErrUnknownDescription  = errors.NewValidationError("Description must be Deposit or Payment")
	ErrNoAccountSelected   = errors.NewValidationError("No account selected")
	ErrLedgerBusy          = errors.NewValidationError("Another ledger operation is in progress")
	ErrRowNotFound         = errors.NewNotFoundError("Ledger row not found")
)
