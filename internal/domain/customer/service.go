package customer

import (
	"context"
	"log/slog"

	"github.com/hirosato/go-bank-client/internal/common/utils"
	"github.com/hirosato/go-bank-client/internal/domain/errors"
)

// Service provides customer-related business logic
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new customer service
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Login resolves credentials into a customer
func (s *Service) Login(ctx context.Context, email, password string) (*Customer, error) {
	if msg := utils.ValidateEmail(email); msg != "" {
		return nil, fieldError(FieldEmail, msg)
	}
	if password == "" {
		return nil, fieldError(FieldPassword, utils.MsgRequired)
	}

	customer, err := s.repo.FindByCredentials(ctx, email, password)
	if err != nil {
		s.logger.Warn("Sign in failed", "code", errors.CodeOf(err), "error", err)
		return nil, err
	}
	if customer == nil {
		s.logger.Info("Sign in rejected", "email", email)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("Signed in", "customerId", customer.ID)
	return customer, nil
}

// NewRegistration opens a fresh registration form bound to this service's repository
func (s *Service) NewRegistration() *Registration {
	return NewRegistration(s.repo, s.logger)
}
