package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hirosato/go-bank-client/internal/domain/account"
)

// AccountRepository implements account.Repository over the backend API
type AccountRepository struct {
	client *Client
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(client *Client) *AccountRepository {
	return &AccountRepository{
		client: client,
	}
}

// accountPayload is the wire form of an account. The backend embeds owners
// as objects.
type accountPayload struct {
	ID                    int64               `json:"id,omitempty"`
	Description           string              `json:"description"`
	Type                  account.AccountType `json:"type"`
	Balance               decimal.Decimal     `json:"balance"`
	BeginBalance          decimal.Decimal     `json:"beginBalance"`
	BeginBalanceTimestamp time.Time           `json:"beginBalanceTimestamp"`
	CreditLine            decimal.NullDecimal `json:"creditLine"`
	Customers             []ownerPayload      `json:"customers,omitempty"`
}

type ownerPayload struct {
	ID int64 `json:"id"`
}

func toAccountPayload(a *account.Account) accountPayload {
	p := accountPayload{
		ID:                    a.ID,
		Description:           a.Description,
		Type:                  a.Type,
		Balance:               a.Balance,
		BeginBalance:          a.BeginBalance,
		BeginBalanceTimestamp: a.BeginBalanceTimestamp,
		CreditLine:            a.CreditLine,
	}
	for _, id := range a.Customers {
		p.Customers = append(p.Customers, ownerPayload{ID: id})
	}
	return p
}

func (p accountPayload) toDomain() account.Account {
	a := account.Account{
		ID:                    p.ID,
		Description:           p.Description,
		Type:                  p.Type,
		Balance:               p.Balance,
		BeginBalance:          p.BeginBalance,
		BeginBalanceTimestamp: p.BeginBalanceTimestamp,
		CreditLine:            p.CreditLine,
	}
	for _, owner := range p.Customers {
		a.Customers = append(a.Customers, owner.ID)
	}
	return a
}

// ListByCustomer lists the accounts of a customer in backend order
func (r *AccountRepository) ListByCustomer(ctx context.Context, customerID int64) ([]account.Account, error) {
	path, err := pathWithID("/customers/%s/accounts", "customerId", customerID)
	if err != nil {
		return nil, err
	}

	var payloads []accountPayload
	if _, err := r.client.do(ctx, http.MethodGet, path, nil, &payloads); err != nil {
		return nil, err
	}

	accounts := make([]account.Account, 0, len(payloads))
	for _, p := range payloads {
		accounts = append(accounts, p.toDomain())
	}
	return accounts, nil
}

// CreateAccount opens an account for the customer and records the assigned id
func (r *AccountRepository) CreateAccount(ctx context.Context, customerID int64, acc *account.Account) error {
	path, err := pathWithID("/customers/%s/accounts", "customerId", customerID)
	if err != nil {
		return err
	}

	var created accountPayload
	if _, err := r.client.do(ctx, http.MethodPost, path, toAccountPayload(acc), &created); err != nil {
		return err
	}

	if created.ID != 0 {
		acc.ID = created.ID
	}
	return nil
}

// UpdateAccount replaces the stored account
func (r *AccountRepository) UpdateAccount(ctx context.Context, acc *account.Account) error {
	path, err := pathWithID("/accounts/%s", "accountId", acc.ID)
	if err != nil {
		return err
	}

	_, err = r.client.do(ctx, http.MethodPut, path, toAccountPayload(acc), nil)
	return err
}

// DeleteAccount removes an account
func (r *AccountRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	path, err := pathWithID("/accounts/%s", "accountId", accountID)
	if err != nil {
		return err
	}

	_, err = r.client.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}
