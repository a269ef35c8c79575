package account

import (
	"context"
)

// Lister lists the accounts of a customer, in backend order
type Lister interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]Account, error)
}

// Updater persists changes to an existing account
type Updater interface {
	UpdateAccount(ctx context.Context, account *Account) error
}

// Repository defines the interface for account data operations
type Repository interface {
	Lister
	Updater

	// Create a new account owned by the customer; the backend assigns the id
	CreateAccount(ctx context.Context, customerID int64, account *Account) error

	// Delete an account
	DeleteAccount(ctx context.Context, accountID int64) error
}
