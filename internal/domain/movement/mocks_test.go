package movement

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/hirosato/go-bank-client/internal/domain/account"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListByAccount(ctx context.Context, accountID int64) ([]Movement, error) {
	ret := m.Called(ctx, accountID)

	var r0 []Movement
	if ret.Get(0) != nil {
		// the ledger sorts in place; hand out a copy
		r0 = append([]Movement(nil), ret.Get(0).([]Movement)...)
	}
	return r0, ret.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, accountID int64, movement *Movement) error {
	ret := m.Called(ctx, accountID, movement)
	return ret.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, movementID int64) error {
	ret := m.Called(ctx, movementID)
	return ret.Error(0)
}

// MockAccounts is a mock implementation of Accounts
type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) ListAccounts(ctx context.Context, customerID int64) ([]account.Account, error) {
	ret := m.Called(ctx, customerID)

	var r0 []account.Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]account.Account)
	}
	return r0, ret.Error(1)
}

func (m *MockAccounts) AdjustBalance(ctx context.Context, acc account.Account, delta decimal.Decimal) (*account.Account, error) {
	ret := m.Called(ctx, acc, delta)

	var r0 *account.Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*account.Account)
	}
	return r0, ret.Error(1)
}
