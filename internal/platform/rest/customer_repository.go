package rest

import (
	"context"
	"net/http"

	"github.com/hirosato/go-bank-client/internal/domain/customer"
	"github.com/hirosato/go-bank-client/internal/domain/errors"
)

// CustomerRepository implements customer.Repository over the backend API
type CustomerRepository struct {
	client *Client
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(client *Client) *CustomerRepository {
	return &CustomerRepository{
		client: client,
	}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateCustomer registers a customer. The backend answers 409 for a known email.
func (r *CustomerRepository) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	created := &customer.Customer{}
	_, err := r.client.do(ctx, http.MethodPost, "/customers", c, created)
	if err != nil {
		if errors.CodeOf(err) == errors.CodeConflict {
			return errors.NewConflictError("Email already registered").WithDetail("email", c.Email)
		}
		return err
	}

	if created.ID != 0 {
		c.ID = created.ID
	}
	return nil
}

// FindByCredentials signs in. Unknown credentials yield nil without error.
func (r *CustomerRepository) FindByCredentials(ctx context.Context, email, password string) (*customer.Customer, error) {
	found := &customer.Customer{}
	res, err := r.client.do(ctx, http.MethodPost, "/customers/signin", signInRequest{Email: email, Password: password}, found)
	if err != nil {
		if errors.CodeOf(err) == errors.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}
	if res.status == http.StatusNoContent || found.ID == 0 {
		return nil, nil
	}

	if err := r.client.captureSession(ctx, res.header); err != nil {
		return nil, err
	}

	found.Password = ""
	return found, nil
}
