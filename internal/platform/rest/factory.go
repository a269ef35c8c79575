package rest

import (
	"github.com/hirosato/go-bank-client/internal/domain/account"
	"github.com/hirosato/go-bank-client/internal/domain/customer"
	"github.com/hirosato/go-bank-client/internal/domain/movement"
)

// Factory creates repository instances bound to one client
type Factory struct {
	client *Client
}

// NewFactory creates a new repository factory
func NewFactory(client *Client) *Factory {
	return &Factory{
		client: client,
	}
}

// CustomerRepository returns an implementation of the customer.Repository interface
func (f *Factory) CustomerRepository() customer.Repository {
	return NewCustomerRepository(f.client)
}

// AccountRepository returns an implementation of the account.Repository interface
func (f *Factory) AccountRepository() account.Repository {
	return NewAccountRepository(f.client)
}

// MovementRepository returns an implementation of the movement.Repository interface
func (f *Factory) MovementRepository() movement.Repository {
	return NewMovementRepository(f.client)
}
