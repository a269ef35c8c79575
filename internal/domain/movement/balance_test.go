package movement

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/hirosato/go-bank-client/internal/domain/account"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"150", "150"},
		{" 12.50 ", "12.5"},
		{"-30", "-30"},
		{"", "0"},
		{"12,50", "0"},
		{"abc", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.True(t, dec(tt.want).Equal(ParseAmount(tt.input)), "got %s", ParseAmount(tt.input))
		})
	}
}

func TestEffectiveAmount(t *testing.T) {
	assert.True(t, dec("-150").Equal(EffectiveAmount(Payment, dec("150"))))
	assert.True(t, dec("-150").Equal(EffectiveAmount(Payment, dec("-150"))))
	assert.True(t, dec("200").Equal(EffectiveAmount(Deposit, dec("200"))))
	assert.True(t, dec("-5").Equal(EffectiveAmount(Deposit, dec("-5"))))
	assert.True(t, EffectiveAmount(Payment, decimal.Zero).IsZero())
}

func TestRunningBalances(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC) }

	t.Run("folds in chronological order", func(t *testing.T) {
		movements := []Movement{
			{ID: 3, Timestamp: day(3), Amount: dec("-30")},
			{ID: 1, Timestamp: day(1), Amount: dec("200")},
			{ID: 2, Timestamp: day(2), Amount: dec("-50")},
		}

		final := RunningBalances(dec("1000"), movements)

		assert.True(t, dec("1120").Equal(final))
		var ids []int64
		var balances []string
		for _, m := range movements {
			ids = append(ids, m.ID)
			balances = append(balances, m.Balance.String())
		}
		assert.Equal(t, []int64{1, 2, 3}, ids)
		assert.Equal(t, []string{"1200", "1150", "1120"}, balances)
	})

	t.Run("equal timestamps keep backend order", func(t *testing.T) {
		movements := []Movement{
			{ID: 9, Timestamp: day(2), Amount: dec("1")},
			{ID: 4, Timestamp: day(2), Amount: dec("2")},
			{ID: 7, Timestamp: day(1), Amount: dec("3")},
			{ID: 5, Timestamp: day(2), Amount: dec("4")},
		}

		RunningBalances(decimal.Zero, movements)

		var ids []int64
		for _, m := range movements {
			ids = append(ids, m.ID)
		}
		assert.Equal(t, []int64{7, 9, 4, 5}, ids)
	})

	t.Run("no movements", func(t *testing.T) {
		assert.True(t, dec("42").Equal(RunningBalances(dec("42"), nil)))
	})
}

func TestCheckOverdraft(t *testing.T) {
	standard := account.Account{Type: account.Standard}
	credit := account.Account{Type: account.Credit, CreditLine: decimal.NewNullDecimal(dec("500"))}

	tests := []struct {
		name        string
		acc         account.Account
		prospective string
		want        error
	}{
		{"standard at zero", standard, "0", nil},
		{"standard below zero", standard, "-0.01", ErrInsufficientFunds},
		{"credit within line", credit, "-450", nil},
		{"credit at line", credit, "-500", nil},
		{"credit beyond line", credit, "-550", ErrCreditLimitExceeded},
		{"credit without line", account.Account{Type: account.Credit}, "-1", ErrCreditLimitExceeded},
		{"unknown type", account.Account{Type: "SAVINGS"}, "-10000", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckOverdraft(tt.acc, dec(tt.prospective))
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, err)
		})
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrInsufficientFunds,
		ErrCreditLimitExceeded,
		ErrImmutableMovement,
		ErrUnknownDescription,
		ErrNoAccountSelected,
		ErrLedgerBusy,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			assert.Equal(t, i == j, errors.Is(a, b), "%v vs %v", a, b)
		}
	}
}
