package movement

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hirosato/go-bank-client/internal/domain/account"
)

// ParseAmount converts a typed amount. Unparseable input counts as zero.
func ParseAmount(text string) decimal.Decimal {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// EffectiveAmount applies the sign convention of the category: debit
// categories always store negative deltas.
func EffectiveAmount(description Description, amount decimal.Decimal) decimal.Decimal {
	if description.IsDebit() && amount.IsPositive() {
		return amount.Neg()
	}
	return amount
}

// SortChronological orders movements by timestamp. Equal timestamps keep
// their backend order.
func SortChronological(movements []Movement) {
	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].Timestamp.Before(movements[j].Timestamp)
	})
}

// RunningBalances sorts movements and sets each Balance to the cumulative
// total seeded from begin. It returns the final balance.
func RunningBalances(begin decimal.Decimal, movements []Movement) decimal.Decimal {
	SortChronological(movements)

	balance := begin
	for i := range movements {
		balance = balance.Add(movements[i].Amount)
		movements[i].Balance = balance
	}
	return balance
}

// CheckOverdraft applies the account type's limit to a prospective balance.
// Types without a known rule are not limited.
func CheckOverdraft(acc account.Account, prospective decimal.Decimal) error {
	switch acc.Type {
	case account.Standard:
		if prospective.IsNegative() {
			return ErrInsufficientFunds
		}
	case account.Credit:
		if prospective.LessThan(acc.CreditLimit().Neg()) {
			return ErrCreditLimitExceeded
		}
	}
	return nil
}
