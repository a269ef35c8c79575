package customer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirosato/go-bank-client/internal/common/utils"
	domainErrors "github.com/hirosato/go-bank-client/internal/domain/errors"
)

// Test implementation of the customer repository
type testCustomerRepository struct {
	created   []*Customer
	customers map[string]*Customer
	err       error
	onCreate  func()
}

func newTestCustomerRepository() *testCustomerRepository {
	return &testCustomerRepository{
		customers: make(map[string]*Customer),
	}
}

func (r *testCustomerRepository) CreateCustomer(ctx context.Context, customer *Customer) error {
	if r.onCreate != nil {
		r.onCreate()
	}
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, customer)
	r.customers[customer.Email+"/"+customer.Password] = customer
	return nil
}

func (r *testCustomerRepository) FindByCredentials(ctx context.Context, email, password string) (*Customer, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.customers[email+"/"+password], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

var validInput = map[string]string{
	FieldFirstName:      "Ana",
	FieldMiddleInitial:  "M.",
	FieldLastName:       "Pérez",
	FieldStreet:         "C/ Mayor 12, 3º",
	FieldCity:           "Bilbao",
	FieldState:          "BI",
	FieldZip:            "48001",
	FieldPhone:          "944123456",
	FieldEmail:          "ana@example.com",
	FieldPassword:       "Secret1!",
	FieldRepeatPassword: "Secret1!",
}

func fill(r *Registration, input map[string]string) {
	for _, field := range RegistrationFields() {
		r.Focus(field.Name)
		r.Change(field.Name, input[field.Name])
		r.Blur(field.Name)
	}
}

func TestRegistration_Gate(t *testing.T) {
	t.Run("opens when all fields valid", func(t *testing.T) {
		r := NewRegistration(newTestCustomerRepository(), testLogger())
		assert.False(t, r.CanSubmit())

		fill(r, validInput)
		assert.True(t, r.CanSubmit())
	})

	t.Run("any invalid field closes it", func(t *testing.T) {
		invalid := map[string]string{
			FieldFirstName:      "Ana1",
			FieldMiddleInitial:  "AB.",
			FieldLastName:       "",
			FieldStreet:         "Main #4",
			FieldCity:           "B1lbao",
			FieldState:          "B1",
			FieldZip:            "4800",
			FieldPhone:          "94412",
			FieldEmail:          "ana@",
			FieldPassword:       "abcdefgh",
			FieldRepeatPassword: "Other1!x",
		}

		for field, bad := range invalid {
			t.Run(field, func(t *testing.T) {
				r := NewRegistration(newTestCustomerRepository(), testLogger())
				fill(r, validInput)
				require.True(t, r.CanSubmit())

				r.Change(field, bad)
				assert.False(t, r.CanSubmit())

				state, ok := r.State(field)
				require.True(t, ok)
				assert.False(t, state.Valid)
				assert.NotEmpty(t, state.Error)
			})
		}
	})

	t.Run("password change re-validates repeat password", func(t *testing.T) {
		r := NewRegistration(newTestCustomerRepository(), testLogger())
		fill(r, validInput)

		r.Change(FieldPassword, "Secret2!")
		state, _ := r.State(FieldRepeatPassword)
		assert.Equal(t, utils.MsgPasswordMismatch, state.Error)
		assert.False(t, r.CanSubmit())

		r.Change(FieldRepeatPassword, "Secret2!")
		assert.True(t, r.CanSubmit())
	})

	t.Run("lowercase password reports strength", func(t *testing.T) {
		r := NewRegistration(newTestCustomerRepository(), testLogger())
		r.Change(FieldPassword, "abcdefgh")

		state, _ := r.State(FieldPassword)
		assert.False(t, state.Valid)
		assert.Equal(t, utils.MsgPasswordStrength, state.Error)
	})
}

func TestRegistration_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("success discards the form", func(t *testing.T) {
		repo := newTestCustomerRepository()
		r := NewRegistration(repo, testLogger())
		fill(r, validInput)

		require.NoError(t, r.Submit(ctx))

		require.Len(t, repo.created, 1)
		created := repo.created[0]
		assert.Equal(t, 48001, created.Zip)
		assert.Equal(t, int64(944123456), created.Phone)
		assert.Equal(t, "Pérez", created.LastName)
		assert.True(t, r.Closed())
		assert.False(t, r.CanSubmit())

		err := r.Submit(ctx)
		assert.ErrorIs(t, err, ErrRegistrationClosed)
		assert.NotErrorIs(t, err, ErrFormIncomplete)
	})

	t.Run("incomplete form is not sent", func(t *testing.T) {
		repo := newTestCustomerRepository()
		r := NewRegistration(repo, testLogger())

		err := r.Submit(ctx)
		assert.ErrorIs(t, err, ErrFormIncomplete)
		assert.NotErrorIs(t, err, ErrRegistrationClosed)
		assert.NotErrorIs(t, err, ErrSubmitInProgress)
		assert.Empty(t, repo.created)
	})

	t.Run("remote failures re-enable the form", func(t *testing.T) {
		failures := []error{
			domainErrors.NewConflictError("Email already registered"),
			domainErrors.NewServerError("Try again later", nil),
			domainErrors.NewConnectionError("Backend unreachable", io.EOF),
		}

		for _, failure := range failures {
			repo := newTestCustomerRepository()
			repo.err = failure
			r := NewRegistration(repo, testLogger())
			fill(r, validInput)

			err := r.Submit(ctx)
			assert.True(t, errors.Is(err, failure))
			assert.False(t, r.Snapshot().Disabled)
			assert.True(t, r.CanSubmit())
			assert.False(t, r.Closed())

			state, _ := r.State(FieldEmail)
			assert.Equal(t, "ana@example.com", state.Value, "values survive a failed submit")
		}
	})

	t.Run("unparseable phone is a parse error", func(t *testing.T) {
		repo := newTestCustomerRepository()
		r := NewRegistration(repo, testLogger())
		input := map[string]string{}
		for k, v := range validInput {
			input[k] = v
		}
		input[FieldPhone] = "99999999999999999999"
		fill(r, input)
		require.True(t, r.CanSubmit())

		err := r.Submit(ctx)
		assert.ErrorIs(t, err, domainErrors.ErrParse)
		assert.Empty(t, repo.created)
		assert.True(t, r.CanSubmit())
	})

	t.Run("fields are disabled while sending", func(t *testing.T) {
		repo := newTestCustomerRepository()
		r := NewRegistration(repo, testLogger())
		fill(r, validInput)

		var reentrant error
		repo.onCreate = func() {
			assert.True(t, r.Snapshot().Disabled)
			assert.False(t, r.CanSubmit())
			r.Change(FieldFirstName, "Changed")
			reentrant = r.Submit(ctx)
		}

		require.NoError(t, r.Submit(ctx))
		assert.Error(t, reentrant)
		require.Len(t, repo.created, 1)
		assert.Equal(t, "Ana", repo.created[0].FirstName)
	})
}

func TestRegistration_Cancel(t *testing.T) {
	t.Run("empty form closes without prompting", func(t *testing.T) {
		r := NewRegistration(newTestCustomerRepository(), testLogger())
		asked := false

		assert.True(t, r.Cancel(func() bool { asked = true; return false }))
		assert.False(t, asked)
		assert.True(t, r.Closed())
	})

	t.Run("filled form requires confirmation", func(t *testing.T) {
		r := NewRegistration(newTestCustomerRepository(), testLogger())
		r.Change(FieldCity, "Bilbao")

		assert.False(t, r.Cancel(func() bool { return false }))
		assert.False(t, r.Closed())
		state, _ := r.State(FieldCity)
		assert.Equal(t, "Bilbao", state.Value)

		assert.True(t, r.Cancel(func() bool { return true }))
		assert.True(t, r.Closed())
	})
}
