package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType represents the type of an account
type AccountType string

const (
	// Standard accounts may not go below zero
	Standard AccountType = "STANDARD"
	// Credit accounts may go down to minus their credit line
	Credit AccountType = "CREDIT"
)

// Valid reports whether t is a known account type
func (t AccountType) Valid() bool {
	return t == Standard || t == Credit
}

// Account represents a customer account as returned by the backend
type Account struct {
	ID                    int64               `json:"id"`
	Description           string              `json:"description"`
	Type                  AccountType         `json:"type"`
	Balance               decimal.Decimal     `json:"balance"`
	BeginBalance          decimal.Decimal     `json:"beginBalance"`
	BeginBalanceTimestamp time.Time           `json:"beginBalanceTimestamp"`
	CreditLine            decimal.NullDecimal `json:"creditLine"`
	// Customers holds the ids of the owners, when the backend embeds them
	Customers []int64 `json:"customers,omitempty"`
}

// CreditLimit returns the credit line, zero when absent
func (a *Account) CreditLimit() decimal.Decimal {
	if !a.CreditLine.Valid {
		return decimal.Zero
	}
	return a.CreditLine.Decimal
}

// CreateAccountRequest represents the request to open a new account.
// Amounts are raw user input.
type CreateAccountRequest struct {
	Description  string      `json:"description"`
	Type         AccountType `json:"type"`
	BeginBalance string      `json:"beginBalance"`
	CreditLine   string      `json:"creditLine,omitempty"`
}

// UpdateAccountRequest represents the editable attributes of an account
type UpdateAccountRequest struct {
	Description string `json:"description,omitempty"`
	CreditLine  string `json:"creditLine,omitempty"`
}
