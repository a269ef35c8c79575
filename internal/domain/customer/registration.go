package customer

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/hirosato/go-bank-client/internal/common/utils"
	"github.com/hirosato/go-bank-client/internal/domain/errors"
	"github.com/hirosato/go-bank-client/internal/domain/form"
	"github.com/hirosato/go-bank-client/pkg/validator"
)

// Registration form field names
const (
	FieldFirstName      = "firstName"
	FieldMiddleInitial  = "middleInitial"
	FieldLastName       = "lastName"
	FieldStreet         = "street"
	FieldCity           = "city"
	FieldState          = "state"
	FieldZip            = "zip"
	FieldPhone          = "phone"
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldRepeatPassword = "repeatPassword"
)

// RegistrationFields is the validation table of the sign-up form
func RegistrationFields() []form.Field {
	return []form.Field{
		{Name: FieldFirstName, Rule: validator.Simple(utils.ValidateName)},
		{Name: FieldMiddleInitial, Rule: validator.Simple(utils.ValidateMiddleInitial)},
		{Name: FieldLastName, Rule: validator.Simple(utils.ValidateName)},
		{Name: FieldStreet, Rule: validator.Simple(utils.ValidateStreet)},
		{Name: FieldCity, Rule: validator.Simple(utils.ValidateName)},
		{Name: FieldState, Rule: validator.Simple(utils.ValidateState)},
		{Name: FieldZip, Rule: validator.Simple(utils.ValidateZip)},
		{Name: FieldPhone, Rule: validator.Simple(utils.ValidatePhone)},
		{Name: FieldEmail, Rule: validator.Simple(utils.ValidateEmail)},
		{Name: FieldPassword, Rule: validator.Simple(utils.ValidatePassword)},
		{
			Name:      FieldRepeatPassword,
			DependsOn: []string{FieldPassword},
			Rule: validator.Func(func(value string, values validator.Values) string {
				return utils.ValidateRepeatPassword(value, values.Value(FieldPassword))
			}),
		},
	}
}

// Registration is the sign-up screen state: eleven validated fields,
// the submit gate, and the submit/cancel protocol.
type Registration struct {
	form       *form.Form
	repo       Repository
	logger     *slog.Logger
	submitting atomic.Bool
	closed     bool
}

// NewRegistration creates an empty registration form
func NewRegistration(repo Repository, logger *slog.Logger) *Registration {
	return &Registration{
		form:   form.New(RegistrationFields()...),
		repo:   repo,
		logger: logger,
	}
}

// Change forwards a value-changed event
func (r *Registration) Change(field, value string) bool {
	return r.form.Change(field, value)
}

// Focus forwards a focus-gained event
func (r *Registration) Focus(field string) {
	r.form.Focus(field)
}

// Blur forwards a focus-lost event
func (r *Registration) Blur(field string) bool {
	return r.form.Blur(field)
}

// CanSubmit reports the submit gate
func (r *Registration) CanSubmit() bool {
	return r.form.CanSubmit() && !r.form.Disabled() && !r.closed
}

// State returns the render state of one field
func (r *Registration) State(field string) (form.FieldState, bool) {
	return r.form.State(field)
}

// Snapshot returns the render state of the whole form
func (r *Registration) Snapshot() form.Snapshot {
	return r.form.Snapshot()
}

// Closed reports whether the form was discarded by a successful submit or a cancel
func (r *Registration) Closed() bool {
	return r.closed
}

// Submit sends the registration. On success the form is discarded and the
// caller should return to the entry screen. On failure the form is re-enabled
// with its values intact so the user can retry.
func (r *Registration) Submit(ctx context.Context) error {
	if r.closed {
		return ErrRegistrationClosed
	}
	if !r.form.CanSubmit() {
		return ErrFormIncomplete
	}
	if !r.submitting.CompareAndSwap(false, true) {
		return ErrSubmitInProgress
	}
	defer r.submitting.Store(false)

	r.form.Disable()

	record, err := r.record()
	if err != nil {
		r.logger.Warn("Registration rejected before sending", "code", errors.CodeOf(err), "error", err)
		r.form.Enable()
		return err
	}

	if err := r.repo.CreateCustomer(ctx, record); err != nil {
		r.logger.Warn("Registration failed", "code", errors.CodeOf(err), "error", err)
		r.form.Enable()
		return err
	}

	r.logger.Info("Customer registered", "email", record.Email)
	r.form.Reset()
	r.closed = true
	return nil
}

// Cancel closes the form. When any field holds text, confirmDiscard is asked
// first and a false answer keeps the form open. It returns whether the form closed.
func (r *Registration) Cancel(confirmDiscard func() bool) bool {
	if r.closed {
		return true
	}
	if r.form.AnyFilled() && (confirmDiscard == nil || !confirmDiscard()) {
		return false
	}

	r.form.Reset()
	r.closed = true
	return true
}

func (r *Registration) record() (*Customer, error) {
	zipText := strings.TrimSpace(r.form.Value(FieldZip))
	zip, err := strconv.Atoi(zipText)
	if err != nil {
		return nil, errors.NewParseError("Zip code is not a valid number", err).WithDetail("field", FieldZip)
	}

	phoneText := strings.TrimSpace(r.form.Value(FieldPhone))
	phone, err := strconv.ParseInt(phoneText, 10, 64)
	if err != nil {
		return nil, errors.NewParseError("Phone is not a valid number", err).WithDetail("field", FieldPhone)
	}

	return &Customer{
		FirstName:     strings.TrimSpace(r.form.Value(FieldFirstName)),
		MiddleInitial: r.form.Value(FieldMiddleInitial),
		LastName:      strings.TrimSpace(r.form.Value(FieldLastName)),
		Street:        strings.TrimSpace(r.form.Value(FieldStreet)),
		City:          strings.TrimSpace(r.form.Value(FieldCity)),
		State:         strings.TrimSpace(r.form.Value(FieldState)),
		Zip:           zip,
		Phone:         phone,
		Email:         r.form.Value(FieldEmail),
		Password:      r.form.Value(FieldPassword),
	}, nil
}
