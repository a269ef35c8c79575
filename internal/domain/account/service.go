package account

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hirosato/go-bank-client/internal/domain/errors"
)

// Service provides account-related business logic
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new account service
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// ListAccounts lists the accounts owned by the customer, in backend order
func (s *Service) ListAccounts(ctx context.Context, customerID int64) ([]Account, error) {
	listed, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	accounts := make([]Account, 0, len(listed))
	for _, acc := range listed {
		owned, explicit := acc.OwnedBy(customerID)
		if !owned {
			s.logger.Warn("Dropping account not owned by customer", "accountId", acc.ID, "customerId", customerID)
			continue
		}
		if !explicit {
			s.logger.Debug("Account has no owner list, trusting customer listing", "accountId", acc.ID)
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// CreateAccount opens a new account for the customer
func (s *Service) CreateAccount(ctx context.Context, customerID int64, req *CreateAccountRequest) (*Account, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if !req.Type.Valid() {
		return nil, ErrInvalidType
	}

	begin, err := parseNonNegative(req.BeginBalance)
	if err != nil {
		return nil, ErrInvalidBeginBalance
	}

	creditLine, err := resolveCreditLine(req.Type, req.CreditLine)
	if err != nil {
		return nil, err
	}

	acc := &Account{
		Description:           description,
		Type:                  req.Type,
		BeginBalance:          begin,
		BeginBalanceTimestamp: s.now().UTC().Truncate(time.Millisecond),
		Balance:               begin,
		CreditLine:            creditLine,
		Customers:             []int64{customerID},
	}

	if err := s.repo.CreateAccount(ctx, customerID, acc); err != nil {
		s.logger.Warn("Failed to create account", "customerId", customerID, "code", errors.CodeOf(err), "error", err)
		return nil, err
	}

	s.logger.Info("Account created", "accountId", acc.ID, "type", acc.Type)
	return acc, nil
}

// UpdateAccount changes the description and, for credit accounts, the credit line
func (s *Service) UpdateAccount(ctx context.Context, acc Account, req *UpdateAccountRequest) (*Account, error) {
	if req.Description != "" {
		description := strings.TrimSpace(req.Description)
		if description == "" {
			return nil, ErrDescriptionRequired
		}
		acc.Description = description
	}

	if req.CreditLine != "" {
		creditLine, err := resolveCreditLine(acc.Type, req.CreditLine)
		if err != nil {
			return nil, err
		}
		acc.CreditLine = creditLine
	}

	if err := s.repo.UpdateAccount(ctx, &acc); err != nil {
		s.logger.Warn("Failed to update account", "accountId", acc.ID, "code", errors.CodeOf(err), "error", err)
		return nil, err
	}

	s.logger.Info("Account updated", "accountId", acc.ID)
	return &acc, nil
}

// DeleteAccount removes an account whose balance is zero
func (s *Service) DeleteAccount(ctx context.Context, acc Account) error {
	if !acc.Balance.IsZero() {
		return ErrBalanceNotZero.WithDetail("balance", acc.Balance.StringFixed(2))
	}

	if err := s.repo.DeleteAccount(ctx, acc.ID); err != nil {
		s.logger.Warn("Failed to delete account", "accountId", acc.ID, "code", errors.CodeOf(err), "error", err)
		return err
	}

	s.logger.Info("Account deleted", "accountId", acc.ID)
	return nil
}

func resolveCreditLine(t AccountType, raw string) (decimal.NullDecimal, error) {
	raw = strings.TrimSpace(raw)
	switch t {
	case Credit:
		if raw == "" {
			return decimal.NullDecimal{}, ErrCreditLineRequired
		}
		value, err := parseNonNegative(raw)
		if err != nil {
			return decimal.NullDecimal{}, ErrInvalidCreditLine
		}
		return decimal.NewNullDecimal(value), nil
	default:
		if raw != "" {
			return decimal.NullDecimal{}, ErrCreditLineNotAllowed
		}
		return decimal.NullDecimal{}, nil
	}
}

func parseNonNegative(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if value.IsNegative() {
		return decimal.Zero, ErrInvalidBeginBalance
	}
	return value, nil
}

// AdjustBalance stores acc.Balance plus delta as the account's balance
func (s *Service) AdjustBalance(ctx context.Context, acc Account, delta decimal.Decimal) (*Account, error) {
	acc.Balance = acc.Balance.Add(delta)

	if err := s.repo.UpdateAccount(ctx, &acc); err != nil {
		s.logger.Warn("Failed to adjust account balance", "accountId", acc.ID, "delta", delta.String(), "code", errors.CodeOf(err), "error", err)
		return nil, err
	}

	s.logger.Debug("Account balance adjusted", "accountId", acc.ID, "balance", acc.Balance.String())
	return &acc, nil
}
