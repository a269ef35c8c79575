package movement

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/hirosato/go-bank-client/internal/domain/account"
	"github.com/hirosato/go-bank-client/internal/domain/errors"
)

// Accounts is the account side of the ledger: listing for selection and
// balance updates for undo. *account.Service satisfies it.
type Accounts interface {
	ListAccounts(ctx context.Context, customerID int64) ([]account.Account, error)
	AdjustBalance(ctx context.Context, acc account.Account, delta decimal.Decimal) (*account.Account, error)
}

// Ledger keeps the movement history of the selected account reconciled with
// the backend. Persisted rows are rebuilt from the backend after every
// mutation; provisional rows live only here until committed.
//
// Remote calls run without holding the state lock. A response that arrives
// after another account was selected is dropped.
type Ledger struct {
	movements Repository
	accounts  Accounts
	logger    *slog.Logger
	now       func() time.Time

	// busy is the single-flight guard for commit and undo
	busy atomic.Bool

	mu          sync.Mutex
	list        []account.Account
	selected    *account.Account
	rows        []Row
	provisional []Row
	balance     decimal.Decimal
	generation  uint64
}

// NewLedger creates an empty ledger with no account selected
func NewLedger(movements Repository, accounts Accounts, logger *slog.Logger) *Ledger {
	return &Ledger{
		movements: movements,
		accounts:  accounts,
		logger:    logger,
		now:       time.Now,
	}
}

// LoadAccounts refreshes the customer's accounts and loads the ledger of the
// previously selected account, or of the first one when it is gone.
func (l *Ledger) LoadAccounts(ctx context.Context, customerID int64) ([]account.Account, error) {
	accounts, err := l.accounts.ListAccounts(ctx, customerID)
	if err != nil {
		l.logger.Warn("Failed to list accounts", "customerId", customerID, "code", errors.CodeOf(err), "error", err)
		return nil, err
	}

	l.mu.Lock()
	l.list = append([]account.Account(nil), accounts...)
	var previousID int64
	if l.selected != nil {
		previousID = l.selected.ID
	}
	l.mu.Unlock()

	acc, ok := account.Reselect(accounts, previousID)
	if !ok {
		l.mu.Lock()
		l.deselect()
		l.mu.Unlock()
		return accounts, nil
	}
	if acc.ID != previousID && previousID != 0 {
		l.logger.Info("Selected account no longer listed", "accountId", previousID, "fallbackId", acc.ID)
	}

	return accounts, l.SelectAccount(ctx, acc)
}

// SelectAccount replaces the active ledger with acc's movement history.
// On failure the previous ledger stays active.
func (l *Ledger) SelectAccount(ctx context.Context, acc account.Account) error {
	movements, err := l.movements.ListByAccount(ctx, acc.ID)
	if err != nil {
		l.logger.Warn("Failed to load movements", "accountId", acc.ID, "code", errors.CodeOf(err), "error", err)
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.generation++
	l.selected = &acc
	l.provisional = nil
	l.apply(movements)

	l.logger.Debug("Ledger loaded", "accountId", acc.ID, "movements", len(movements), "balance", l.balance.String())
	return nil
}

// SwitchAccount selects another account from the last loaded list
func (l *Ledger) SwitchAccount(ctx context.Context, accountID int64) error {
	l.mu.Lock()
	acc, ok := account.Find(l.list, accountID)
	l.mu.Unlock()
	if !ok {
		return account.ErrAccountNotFound.WithDetail("accountId", accountID)
	}
	return l.SelectAccount(ctx, acc)
}

// AddProvisionalRow appends an empty row dated now. It does nothing when no
// account is selected.
func (l *Ledger) AddProvisionalRow() (Row, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.selected == nil {
		return Row{}, false
	}

	row := Row{
		Key:   ulid.Make(),
		State: Provisional,
		Movement: Movement{
			Timestamp:   l.now(),
			Description: DefaultDescription,
			Amount:      decimal.Zero,
			Balance:     l.balance,
		},
	}
	l.provisional = append(l.provisional, row)
	return row, true
}

// EditRow updates the draft of a provisional row. An empty description keeps
// the current one. Persisted rows are never changed.
func (l *Ledger) EditRow(key ulid.ULID, description, amount string) (Row, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := indexOf(l.provisional, key)
	if idx < 0 {
		if indexOf(l.rows, key) >= 0 {
			return Row{}, ErrImmutableMovement
		}
		return Row{}, ErrRowNotFound
	}

	row := l.provisional[idx]
	if description != "" {
		d, ok := ParseDescription(description)
		if !ok {
			return row, ErrUnknownDescription
		}
		row.Description = d
	}
	row.Amount = ParseAmount(amount)
	l.provisional[idx] = row
	return row, nil
}

// DiscardRow drops a provisional row before it is sent. The returned row is
// marked Discarded.
func (l *Ledger) DiscardRow(key ulid.ULID) (Row, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if row, ok := l.discard(key); ok {
		return row, nil
	}
	if indexOf(l.rows, key) >= 0 {
		return Row{}, ErrImmutableMovement
	}
	return Row{}, ErrRowNotFound
}

// CommitRow sends a provisional row to the backend and reloads the ledger.
// Debits that would break the account's limit are rejected and the row is
// discarded, as it is when the backend refuses the movement.
func (l *Ledger) CommitRow(ctx context.Context, key ulid.ULID, description Description, amount string) error {
	if description != Deposit && description != Payment {
		return ErrUnknownDescription
	}
	if !l.busy.CompareAndSwap(false, true) {
		return ErrLedgerBusy
	}
	defer l.busy.Store(false)

	l.mu.Lock()
	if l.selected == nil {
		l.mu.Unlock()
		return ErrNoAccountSelected
	}
	idx := indexOf(l.provisional, key)
	if idx < 0 {
		persisted := indexOf(l.rows, key) >= 0
		l.mu.Unlock()
		if persisted {
			return ErrImmutableMovement
		}
		return ErrRowNotFound
	}

	row := l.provisional[idx]
	acc := *l.selected
	generation := l.generation
	effective := EffectiveAmount(description, ParseAmount(amount))

	if effective.IsNegative() {
		prospective := l.balance.Add(effective)
		if err := CheckOverdraft(acc, prospective); err != nil {
			l.discard(key)
			l.mu.Unlock()
			l.logger.Info("Movement rejected", "accountId", acc.ID, "amount", effective.String(), "prospective", prospective.String(), "reason", err.Error())
			return err
		}
	}
	l.mu.Unlock()

	m := &Movement{
		Timestamp:   row.Timestamp,
		Description: description,
		Amount:      effective,
	}
	if err := l.movements.Create(ctx, acc.ID, m); err != nil {
		l.logger.Warn("Failed to create movement", "accountId", acc.ID, "code", errors.CodeOf(err), "error", err)
		l.mu.Lock()
		if l.generation == generation {
			l.discard(key)
		}
		l.mu.Unlock()
		return err
	}

	l.logger.Info("Movement created", "accountId", acc.ID, "movementId", m.ID, "amount", effective.String())
	return l.reload(ctx, acc.ID, generation, key)
}

// UndoLast deletes the most recent persisted movement after confirm returns
// true, takes its amount off the account's stored balance and reloads. It
// reports whether a movement was removed. An empty ledger makes no remote call.
func (l *Ledger) UndoLast(ctx context.Context, confirm func() bool) (bool, error) {
	if !l.busy.CompareAndSwap(false, true) {
		return false, ErrLedgerBusy
	}
	defer l.busy.Store(false)

	l.mu.Lock()
	target, ok := View{Rows: l.rows}.Last()
	if l.selected == nil || !ok {
		l.mu.Unlock()
		return false, nil
	}
	acc := *l.selected
	acc.Balance = l.balance
	generation := l.generation
	l.mu.Unlock()

	if confirm != nil && !confirm() {
		return false, nil
	}

	if err := l.movements.Delete(ctx, target.ID); err != nil {
		l.logger.Warn("Failed to delete movement", "movementId", target.ID, "code", errors.CodeOf(err), "error", err)
		return false, err
	}

	updated, err := l.accounts.AdjustBalance(ctx, acc, target.Amount.Neg())
	if err != nil {
		l.logger.Warn("Failed to update balance after undo", "accountId", acc.ID, "movementId", target.ID, "code", errors.CodeOf(err), "error", err)
		return false, err
	}

	l.mu.Lock()
	if l.generation == generation {
		adjusted := *updated
		l.selected = &adjusted
		l.replaceListed(adjusted)
	}
	l.mu.Unlock()

	l.logger.Info("Movement undone", "accountId", acc.ID, "movementId", target.ID)
	return true, l.reload(ctx, acc.ID, generation, ulid.ULID{})
}

// View returns the persisted rows in chronological order followed by the
// provisional ones.
func (l *Ledger) View() View {
	l.mu.Lock()
	defer l.mu.Unlock()

	view := View{Balance: l.balance}
	if l.selected == nil {
		return view
	}
	view.AccountID = l.selected.ID
	view.Rows = make([]Row, 0, len(l.rows)+len(l.provisional))
	view.Rows = append(view.Rows, l.rows...)
	view.Rows = append(view.Rows, l.provisional...)
	return view
}

// Balance returns the displayed total balance
func (l *Ledger) Balance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Selected returns the active account
func (l *Ledger) Selected() (account.Account, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.selected == nil {
		return account.Account{}, false
	}
	return *l.selected, true
}

// Accounts returns the last loaded account list
func (l *Ledger) Accounts() []account.Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]account.Account(nil), l.list...)
}

// Clear forgets the accounts and the active ledger
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.list = nil
	l.deselect()
}

func (l *Ledger) reload(ctx context.Context, accountID int64, generation uint64, committed ulid.ULID) error {
	movements, err := l.movements.ListByAccount(ctx, accountID)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.generation != generation {
		l.logger.Debug("Dropping reload for inactive ledger", "accountId", accountID)
		return err
	}
	if committed != (ulid.ULID{}) {
		l.discard(committed)
	}
	if err != nil {
		l.logger.Warn("Failed to reload movements", "accountId", accountID, "code", errors.CodeOf(err), "error", err)
		return err
	}

	l.apply(movements)
	return nil
}

// apply rebuilds the persisted rows. Movements without an id stay drafts and
// do not count towards the balance. Callers hold mu.
func (l *Ledger) apply(movements []Movement) {
	confirmed := make([]Movement, 0, len(movements))
	var drafts []Row
	for _, row := range l.provisional {
		if !row.loaded {
			drafts = append(drafts, row)
		}
	}
	unidentified := 0
	for _, m := range movements {
		if m.HasID() {
			confirmed = append(confirmed, m)
			continue
		}
		unidentified++
		drafts = append(drafts, Row{Key: ulid.Make(), State: Provisional, Movement: m, loaded: true})
	}
	if unidentified > 0 {
		l.logger.Warn("Backend returned movements without id", "count", unidentified)
	}

	l.balance = RunningBalances(l.selected.BeginBalance, confirmed)

	rows := make([]Row, len(confirmed))
	for i, m := range confirmed {
		rows[i] = Row{Key: persistedKey(m.ID), State: Persisted, Movement: m}
	}
	l.rows = rows

	for i := range drafts {
		drafts[i].Balance = l.balance
	}
	l.provisional = drafts
}

func (l *Ledger) discard(key ulid.ULID) (Row, bool) {
	idx := indexOf(l.provisional, key)
	if idx < 0 {
		return Row{}, false
	}
	row := l.provisional[idx]
	row.State = Discarded
	l.provisional = append(l.provisional[:idx], l.provisional[idx+1:]...)
	l.logger.Debug("Provisional row discarded", "key", key.String())
	return row, true
}

func (l *Ledger) deselect() {
	l.generation++
	l.selected = nil
	l.rows = nil
	l.provisional = nil
	l.balance = decimal.Zero
}

func (l *Ledger) replaceListed(acc account.Account) {
	for i := range l.list {
		if l.list[i].ID == acc.ID {
			l.list[i] = acc
		}
	}
}

func indexOf(rows []Row, key ulid.ULID) int {
	for i := range rows {
		if rows[i].Key == key {
			return i
		}
	}
	return -1
}
