package rest

import (
	"context"
	"net/http"

	"github.com/hirosato/go-bank-client/internal/domain/movement"
)

// MovementRepository implements movement.Repository over the backend API
type MovementRepository struct {
	client *Client
}

// NewMovementRepository creates a new MovementRepository
func NewMovementRepository(client *Client) *MovementRepository {
	return &MovementRepository{
		client: client,
	}
}

// ListByAccount lists the movements of an account in backend order
func (r *MovementRepository) ListByAccount(ctx context.Context, accountID int64) ([]movement.Movement, error) {
	path, err := pathWithID("/accounts/%s/movements", "accountId", accountID)
	if err != nil {
		return nil, err
	}

	var movements []movement.Movement
	if _, err := r.client.do(ctx, http.MethodGet, path, nil, &movements); err != nil {
		return nil, err
	}
	return movements, nil
}

// Create records a movement on an account and stores the assigned id
func (r *MovementRepository) Create(ctx context.Context, accountID int64, m *movement.Movement) error {
	path, err := pathWithID("/accounts/%s/movements", "accountId", accountID)
	if err != nil {
		return err
	}

	var created movement.Movement
	if _, err := r.client.do(ctx, http.MethodPost, path, m, &created); err != nil {
		return err
	}

	if created.ID != 0 {
		m.ID = created.ID
	}
	return nil
}

// Delete removes a movement
func (r *MovementRepository) Delete(ctx context.Context, movementID int64) error {
	path, err := pathWithID("/movements/%s", "movementId", movementID)
	if err != nil {
		return err
	}

	_, err = r.client.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}
