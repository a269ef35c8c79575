package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hirosato/go-bank-client/internal/domain/account"
	"github.com/hirosato/go-bank-client/internal/domain/customer"
	domainErrors "github.com/hirosato/go-bank-client/internal/domain/errors"
	"github.com/hirosato/go-bank-client/internal/domain/movement"
)

const helpText = `Commands:
  login                      sign in with email and password
  signup                     register a new customer
  accounts                   list your accounts
  select <id>                show the ledger of an account
  new-account                open an account
  edit-account <id>          change description or credit line
  delete-account <id>        delete an account with zero balance
  add                        add a provisional movement row
  edit <row> <desc> <amount> change a provisional row
  commit <row> [desc amount] send a provisional row to the bank
  discard <row>              drop a provisional row
  undo                       remove the most recent movement
  ledger                     print the ledger
  logout                     sign out
  quit                       leave
`

var fieldLabels = map[string]string{
	customer.FieldFirstName:      "First name",
	customer.FieldMiddleInitial:  "Middle initial",
	customer.FieldLastName:       "Last name",
	customer.FieldStreet:         "Street",
	customer.FieldCity:           "City",
	customer.FieldState:          "State",
	customer.FieldZip:            "Zip",
	customer.FieldPhone:          "Phone",
	customer.FieldEmail:          "Email",
	customer.FieldPassword:       "Password",
	customer.FieldRepeatPassword: "Repeat password",
}

type sessionCloser interface {
	ClearSession()
}

// shell is the terminal front end. It forwards input to the services and
// prints their state; it holds no business rules.
type shell struct {
	in     *bufio.Scanner
	out    io.Writer
	logger *slog.Logger

	customers *customer.Service
	accounts  *account.Service
	ledger    *movement.Ledger
	session   sessionCloser

	current *customer.Customer
}

func newShell(
	in io.Reader,
	out io.Writer,
	customers *customer.Service,
	accounts *account.Service,
	ledger *movement.Ledger,
	session sessionCloser,
	logger *slog.Logger,
) *shell {
	return &shell{
		in:        bufio.NewScanner(in),
		out:       out,
		logger:    logger,
		customers: customers,
		accounts:  accounts,
		ledger:    ledger,
		session:   session,
	}
}

func (s *shell) run(ctx context.Context) error {
	s.printf("Bank client. Type 'help' for commands.\n")
	for ctx.Err() == nil {
		line, ok := s.prompt("> ")
		if !ok {
			return s.in.Err()
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		quit, err := s.dispatch(ctx, args[0], args[1:])
		if err != nil {
			s.report(err)
		}
		if quit {
			return nil
		}
	}
	return nil
}

func (s *shell) dispatch(ctx context.Context, cmd string, args []string) (bool, error) {
	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		s.printf(helpText)
		return false, nil
	case "login":
		return false, s.login(ctx)
	case "signup":
		return false, s.signup(ctx)
	}

	if s.current == nil {
		return false, domainErrors.NewValidationError("Please log in first")
	}

	switch cmd {
	case "accounts":
		return false, s.listAccounts(ctx)
	case "select":
		return false, s.selectAccount(ctx, args)
	case "new-account":
		return false, s.newAccount(ctx)
	case "edit-account":
		return false, s.editAccount(ctx, args)
	case "delete-account":
		return false, s.deleteAccount(ctx, args)
	case "add":
		return false, s.addRow()
	case "edit":
		return false, s.editRow(args)
	case "commit":
		return false, s.commitRow(ctx, args)
	case "discard":
		return false, s.discardRow(args)
	case "undo":
		return false, s.undo(ctx)
	case "ledger":
		s.printLedger()
		return false, nil
	case "logout":
		s.logout()
		return false, nil
	}
	return false, domainErrors.NewValidationError(fmt.Sprintf("Unknown command %q, type 'help'", cmd))
}

func (s *shell) login(ctx context.Context) error {
	email, ok := s.prompt("Email: ")
	if !ok {
		return io.ErrUnexpectedEOF
	}
	password, ok := s.prompt("Password: ")
	if !ok {
		return io.ErrUnexpectedEOF
	}

	c, err := s.customers.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return err
	}
	s.current = c
	s.printf("Welcome, %s.\n", c.FullName())
	return s.listAccounts(ctx)
}

func (s *shell) signup(ctx context.Context) error {
	r := s.customers.NewRegistration()
	s.printf("Type !cancel at any prompt to leave the form.\n")

	for {
		for _, field := range r.Snapshot().Fields {
			if field.Valid {
				continue
			}
			cancelled, err := s.askField(r, field.Name)
			if err != nil {
				return err
			}
			if cancelled {
				if r.Cancel(s.confirmFunc("Discard the entered data?")) {
					s.printf("Sign-up cancelled.\n")
					return nil
				}
			}
		}
		if !r.CanSubmit() {
			continue
		}

		choice, ok := s.prompt("submit, edit <field> or cancel: ")
		if !ok {
			return io.ErrUnexpectedEOF
		}
		words := strings.Fields(choice)
		switch {
		case len(words) == 1 && words[0] == "submit":
			if err := r.Submit(ctx); err != nil {
				s.report(err)
				continue
			}
			s.printf("Customer registered, you can log in now.\n")
			return nil
		case len(words) == 2 && words[0] == "edit":
			if _, known := fieldLabels[words[1]]; !known {
				s.printf("Unknown field %q.\n", words[1])
				continue
			}
			if _, err := s.askField(r, words[1]); err != nil {
				return err
			}
		case len(words) == 1 && words[0] == "cancel":
			if r.Cancel(s.confirmFunc("Discard the entered data?")) {
				s.printf("Sign-up cancelled.\n")
				return nil
			}
		}
	}
}

// askField feeds one typed value through focus, change and blur. It reports
// whether the user asked to cancel.
func (s *shell) askField(r *customer.Registration, name string) (bool, error) {
	value, ok := s.prompt(fieldLabels[name] + ": ")
	if !ok {
		return false, io.ErrUnexpectedEOF
	}
	if strings.TrimSpace(value) == "!cancel" {
		return true, nil
	}

	r.Focus(name)
	r.Change(name, value)
	r.Blur(name)

	if state, _ := r.State(name); !state.Valid {
		s.printf("  %s\n", state.Error)
	}
	return false, nil
}

func (s *shell) listAccounts(ctx context.Context) error {
	accounts, err := s.ledger.LoadAccounts(ctx, s.current.ID)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		s.printf("No accounts yet, use new-account.\n")
		return nil
	}

	selected, _ := s.ledger.Selected()
	for _, acc := range accounts {
		marker := " "
		if acc.ID == selected.ID {
			marker = "*"
		}
		line := fmt.Sprintf("%s %4d  %-24s %-8s %12s", marker, acc.ID, acc.Description, acc.Type, acc.Balance.StringFixed(2))
		if acc.CreditLine.Valid {
			line += fmt.Sprintf("  credit line %s", acc.CreditLine.Decimal.StringFixed(2))
		}
		s.printf("%s\n", line)
	}
	return nil
}

func (s *shell) selectAccount(ctx context.Context, args []string) error {
	id, err := intArg(args, 0, "account id")
	if err != nil {
		return err
	}
	if err := s.ledger.SwitchAccount(ctx, id); err != nil {
		return err
	}
	s.printLedger()
	return nil
}

func (s *shell) newAccount(ctx context.Context) error {
	req := &account.CreateAccountRequest{}
	var ok bool
	if req.Description, ok = s.prompt("Description: "); !ok {
		return io.ErrUnexpectedEOF
	}
	kind, ok := s.prompt("Type (STANDARD/CREDIT): ")
	if !ok {
		return io.ErrUnexpectedEOF
	}
	req.Type = account.AccountType(strings.ToUpper(strings.TrimSpace(kind)))
	if req.BeginBalance, ok = s.prompt("Begin balance: "); !ok {
		return io.ErrUnexpectedEOF
	}
	if req.Type == account.Credit {
		if req.CreditLine, ok = s.prompt("Credit line: "); !ok {
			return io.ErrUnexpectedEOF
		}
	}

	acc, err := s.accounts.CreateAccount(ctx, s.current.ID, req)
	if err != nil {
		return err
	}
	s.printf("Account %d opened.\n", acc.ID)
	return s.listAccounts(ctx)
}

func (s *shell) editAccount(ctx context.Context, args []string) error {
	acc, err := s.listedAccount(args)
	if err != nil {
		return err
	}

	req := &account.UpdateAccountRequest{}
	var ok bool
	if req.Description, ok = s.prompt(fmt.Sprintf("Description [%s]: ", acc.Description)); !ok {
		return io.ErrUnexpectedEOF
	}
	if acc.Type == account.Credit {
		if req.CreditLine, ok = s.prompt(fmt.Sprintf("Credit line [%s]: ", acc.CreditLimit().StringFixed(2))); !ok {
			return io.ErrUnexpectedEOF
		}
	}

	if _, err := s.accounts.UpdateAccount(ctx, acc, req); err != nil {
		return err
	}
	return s.listAccounts(ctx)
}

func (s *shell) deleteAccount(ctx context.Context, args []string) error {
	acc, err := s.listedAccount(args)
	if err != nil {
		return err
	}
	if !s.confirm(fmt.Sprintf("Delete account %d (%s)?", acc.ID, acc.Description)) {
		return nil
	}
	if err := s.accounts.DeleteAccount(ctx, acc); err != nil {
		return err
	}
	return s.listAccounts(ctx)
}

func (s *shell) listedAccount(args []string) (account.Account, error) {
	id, err := intArg(args, 0, "account id")
	if err != nil {
		return account.Account{}, err
	}
	acc, ok := account.Find(s.ledger.Accounts(), id)
	if !ok {
		return account.Account{}, account.ErrAccountNotFound
	}
	return acc, nil
}

func (s *shell) addRow() error {
	if _, ok := s.ledger.AddProvisionalRow(); !ok {
		return domainErrors.NewValidationError("Select an account first")
	}
	s.printLedger()
	return nil
}

func (s *shell) editRow(args []string) error {
	row, err := s.rowArg(args)
	if err != nil {
		return err
	}
	if len(args) < 3 {
		return domainErrors.NewValidationError("Usage: edit <row> <Deposit|Payment> <amount>")
	}
	if _, err := s.ledger.EditRow(row.Key, args[1], args[2]); err != nil {
		return err
	}
	s.printLedger()
	return nil
}

func (s *shell) commitRow(ctx context.Context, args []string) error {
	row, err := s.rowArg(args)
	if err != nil {
		return err
	}

	description := row.Description
	amount := row.Amount.String()
	if len(args) >= 3 {
		d, ok := movement.ParseDescription(args[1])
		if !ok {
			return movement.ErrUnknownDescription
		}
		description, amount = d, args[2]
	}

	err = s.ledger.CommitRow(ctx, row.Key, description, amount)
	s.printLedger()
	return err
}

func (s *shell) discardRow(args []string) error {
	row, err := s.rowArg(args)
	if err != nil {
		return err
	}
	if _, err := s.ledger.DiscardRow(row.Key); err != nil {
		return err
	}
	s.printf("Draft discarded.\n")
	s.printLedger()
	return nil
}

func (s *shell) undo(ctx context.Context) error {
	last, ok := s.ledger.View().Last()
	if !ok {
		s.printf("Nothing to undo.\n")
		return nil
	}

	question := fmt.Sprintf("Remove %s of %s from %s?", last.Description, last.Amount.StringFixed(2), last.Timestamp.Format("2006-01-02"))
	undone, err := s.ledger.UndoLast(ctx, s.confirmFunc(question))
	if err != nil {
		return err
	}
	if undone {
		s.printLedger()
	}
	return nil
}

func (s *shell) logout() {
	s.ledger.Clear()
	s.session.ClearSession()
	s.current = nil
	s.printf("Signed out.\n")
}

func (s *shell) printLedger() {
	view := s.ledger.View()
	if view.AccountID == 0 {
		s.printf("No account selected.\n")
		return
	}

	s.printf("Account %d\n", view.AccountID)
	for i, row := range view.Rows {
		state := ""
		if row.State == movement.Provisional {
			state = "(draft)"
		}
		s.printf("%3d  %s  %-8s %12s %12s %s\n",
			i+1,
			row.Timestamp.Format("2006-01-02"),
			row.Description,
			row.Amount.StringFixed(2),
			row.Balance.StringFixed(2),
			state,
		)
	}
	s.printf("Balance: %s\n", view.Balance.StringFixed(2))
}

func (s *shell) rowArg(args []string) (movement.Row, error) {
	n, err := intArg(args, 0, "row number")
	if err != nil {
		return movement.Row{}, err
	}
	rows := s.ledger.View().Rows
	if n < 1 || int(n) > len(rows) {
		return movement.Row{}, movement.ErrRowNotFound
	}
	return rows[n-1], nil
}

func (s *shell) report(err error) {
	message := domainErrors.MessageOf(err)
	switch domainErrors.CodeOf(err) {
	case domainErrors.CodeValidation, domainErrors.CodeAuthentication, domainErrors.CodeNotFound:
		s.printf("! %s\n", message)
	case domainErrors.CodeConflict:
		s.printf("Warning: %s\n", message)
	case domainErrors.CodeServer:
		s.printf("Server error: %s\n", message)
	case domainErrors.CodeConnection:
		s.printf("Connection problem: %s\n", message)
	case domainErrors.CodeParse:
		s.printf("Could not read a number: %s\n", message)
	default:
		s.logger.Error("Unexpected error", "error", err)
		s.printf("Error: %s\n", message)
	}
}

func (s *shell) prompt(label string) (string, bool) {
	s.printf("%s", label)
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func (s *shell) confirm(question string) bool {
	answer, ok := s.prompt(question + " [y/N] ")
	if !ok {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func (s *shell) confirmFunc(question string) func() bool {
	return func() bool { return s.confirm(question) }
}

func (s *shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}

func intArg(args []string, i int, name string) (int64, error) {
	if len(args) <= i {
		return 0, domainErrors.NewValidationError(fmt.Sprintf("Missing %s", name))
	}
	n, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil {
		return 0, domainErrors.NewParseError(fmt.Sprintf("%q is not a valid %s", args[i], name), err)
	}
	return n, nil
}
