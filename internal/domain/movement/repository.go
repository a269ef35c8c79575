package movement

import (
	"context"
)

// Repository defines the interface for movement data operations
type Repository interface {
	// List the movements of an account, in backend order
	ListByAccount(ctx context.Context, accountID int64) ([]Movement, error)

	// Create a movement on an account; the backend assigns the id
	Create(ctx context.Context, accountID int64, movement *Movement) error

	// Delete a movement
	Delete(ctx context.Context, movementID int64) error
}
