package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/hirosato/go-bank-client/internal/domain/errors"
	"github.com/hirosato/go-bank-client/internal/domain/movement"
)

func TestMovementRepository(t *testing.T) {
	ctx := context.Background()

	var posted movement.Movement
	var deleted string
	r := chi.NewRouter()
	r.Get("/accounts/{accountId}/movements", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
		  {"id": 12, "timestamp": "2026-10-03T00:00:00Z", "description": "Payment", "amount": -30},
		  {"id": 10, "timestamp": "2026-10-01T00:00:00Z", "description": "Deposit", "amount": "200.00"}
		]`))
	})
	r.Post("/accounts/{accountId}/movements", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "accountId") == "9" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Amount required"})
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		posted.ID = 77
		writeJSON(w, http.StatusCreated, posted)
	})
	r.Delete("/movements/{movementId}", func(w http.ResponseWriter, r *http.Request) {
		deleted = chi.URLParam(r, "movementId")
		w.WriteHeader(http.StatusOK)
	})
	repo := NewMovementRepository(newTestClient(t, r))

	t.Run("list keeps backend order", func(t *testing.T) {
		movements, err := repo.ListByAccount(ctx, 1)
		require.NoError(t, err)
		require.Len(t, movements, 2)
		assert.Equal(t, int64(12), movements[0].ID)
		assert.Equal(t, movement.Payment, movements[0].Description)
		assert.True(t, movements[0].Amount.Equal(decimal.NewFromInt(-30)))
		assert.True(t, movements[1].Amount.Equal(decimal.NewFromInt(200)))
	})

	t.Run("create", func(t *testing.T) {
		m := &movement.Movement{
			Timestamp:   time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC),
			Description: movement.Payment,
			Amount:      decimal.RequireFromString("-12.34"),
		}
		require.NoError(t, repo.Create(ctx, 1, m))
		assert.Equal(t, int64(77), m.ID)
		assert.True(t, posted.Amount.Equal(m.Amount))
		assert.Equal(t, movement.Payment, posted.Description)
	})

	t.Run("create rejected", func(t *testing.T) {
		err := repo.Create(ctx, 9, &movement.Movement{Description: movement.Deposit})
		assert.ErrorIs(t, err, domainErrors.ErrValidation)
		assert.Equal(t, "Amount required", domainErrors.MessageOf(err))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, 12))
		assert.Equal(t, "12", deleted)
	})
}
