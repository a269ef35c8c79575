package movement

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Description is the category of a movement
type Description string

const (
	Deposit Description = "Deposit"
	Payment Description = "Payment"
)

// DefaultDescription is used for new provisional rows
const DefaultDescription = Deposit

// IsDebit reports whether amounts of this category are stored as negative deltas
func (d Description) IsDebit() bool {
	return d == Payment
}

// ParseDescription matches a category name case-insensitively
func ParseDescription(s string) (Description, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposit":
		return Deposit, true
	case "payment":
		return Payment, true
	}
	return "", false
}

// Movement represents a single balance change on an account
type Movement struct {
	ID          int64           `json:"id,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	Description Description     `json:"description"`
	Amount      decimal.Decimal `json:"amount"`

	// Balance is the running balance after this movement. Computed locally.
	Balance decimal.Decimal `json:"-"`
}

// HasID reports whether the backend has assigned an id
func (m *Movement) HasID() bool {
	return m.ID != 0
}

// RowState is the lifecycle state of a ledger row
type RowState int

const (
	Provisional RowState = iota
	Persisted
	Discarded
)

func (s RowState) String() string {
	switch s {
	case Provisional:
		return "PROVISIONAL"
	case Persisted:
		return "PERSISTED"
	case Discarded:
		return "DISCARDED"
	}
	return "UNKNOWN"
}

// Row is one line of the ledger view
type Row struct {
	// Key identifies the row locally; provisional rows have no id yet
	Key   ulid.ULID
	State RowState
	Movement

	// loaded marks drafts that came back from the backend without an id
	loaded bool
}

// persistedKey derives a row key from a backend id. The zero timestamp keeps
// it apart from keys minted for provisional rows.
func persistedKey(id int64) ulid.ULID {
	var key ulid.ULID
	binary.BigEndian.PutUint64(key[8:], uint64(id))
	return key
}

// Editable reports whether the row may still be changed
func (r Row) Editable() bool {
	return r.State == Provisional && !r.HasID()
}

// View is a snapshot of the ledger for the selected account
type View struct {
	AccountID int64
	Rows      []Row
	// Balance is the displayed total balance
	Balance decimal.Decimal
}

// Last returns the most recent persisted row
func (v View) Last() (Row, bool) {
	for i := len(v.Rows) - 1; i >= 0; i-- {
		if v.Rows[i].State == Persisted && v.Rows[i].HasID() {
			return v.Rows[i], true
		}
	}
	return Row{}, false
}
