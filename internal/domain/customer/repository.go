package customer

import (
	"context"
)

// Repository defines the backend operations on customers
type Repository interface {
	// CreateCustomer registers a new customer.
	// Fails with a conflict error when the email is already registered.
	CreateCustomer(ctx context.Context, customer *Customer) error

	// FindByCredentials returns the customer owning the credentials,
	// or nil without error when they match no customer.
	FindByCredentials(ctx context.Context, email, password string) (*Customer, error)
}
