// Package cli implements the interactive text menu. It is a thin
// presentation layer: all rules live behind the ledger's public operations,
// and every result or failure is rendered here as text.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/boddenberg/bankledger-go/internal/infra/observability"
	"github.com/boddenberg/bankledger-go/internal/infra/store"
	"github.com/boddenberg/bankledger-go/internal/ledger"
	"github.com/shopspring/decimal"
)

// App drives the menu loop against one ledger and one snapshot store.
type App struct {
	ledger  *ledger.Ledger
	store   *store.JSONStore
	metrics *observability.Metrics
	logger  *zap.Logger

	in  *bufio.Scanner
	out io.Writer
}

// New creates the CLI app reading from in and writing to out.
func New(l *ledger.Ledger, s *store.JSONStore, m *observability.Metrics, logger *zap.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		ledger:  l,
		store:   s,
		metrics: m,
		logger:  logger,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run executes the menu loop until the user exits, input ends, or ctx is
// cancelled. The ledger is saved on every exit path.
func (a *App) Run(ctx context.Context) error {
	a.printHeader()
	fmt.Fprintf(a.out, "%s\n\n", a.ledger.Summary())

	for {
		if err := ctx.Err(); err != nil {
			// The session context is already dead; save with a detached one
			// so the snapshot still reaches disk.
			a.saveData(context.Background())
			return err
		}

		a.displayMenu()

		choice, err := a.readInput("Enter your choice: ")
		if err != nil {
			// Input ended (e.g. piped session ran out): save and leave.
			a.saveData(context.Background())
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			a.registerCustomer(ctx)
		case "2":
			a.createAccount(ctx)
		case "3":
			a.depositMoney(ctx)
		case "4":
			a.withdrawMoney(ctx)
		case "5":
			a.transferMoney(ctx)
		case "6":
			a.viewAccountDetails()
		case "7":
			a.viewTransactionHistory()
		case "8":
			a.listAllCustomers()
		case "9":
			a.searchCustomers()
		case "10":
			a.viewBankStatistics()
		case "11":
			if a.saveData(ctx) {
				fmt.Fprintln(a.out, "\nData saved successfully!")
			}
		case "0":
			a.saveData(ctx)
			fmt.Fprintln(a.out, "\nData saved. Goodbye!")
			return nil
		default:
			fmt.Fprintln(a.out, "\nInvalid choice. Please try again.")
		}
	}
}

func (a *App) printHeader() {
	fmt.Fprintln(a.out, "=============================================")
	fmt.Fprintf(a.out, "  %s\n", a.ledger.Name())
	fmt.Fprintln(a.out, "=============================================")
}

func (a *App) displayMenu() {
	fmt.Fprintln(a.out, "---------------------------------------------")
	fmt.Fprintln(a.out, "                MAIN MENU")
	fmt.Fprintln(a.out, "---------------------------------------------")
	fmt.Fprintln(a.out, "  1. Register New Customer")
	fmt.Fprintln(a.out, "  2. Create Account for Customer")
	fmt.Fprintln(a.out, "  3. Deposit Money")
	fmt.Fprintln(a.out, "  4. Withdraw Money")
	fmt.Fprintln(a.out, "  5. Transfer Money")
	fmt.Fprintln(a.out, "  6. View Account Details")
	fmt.Fprintln(a.out, "  7. View Transaction History")
	fmt.Fprintln(a.out, "  8. List All Customers")
	fmt.Fprintln(a.out, "  9. Search Customers")
	fmt.Fprintln(a.out, " 10. View Bank Statistics")
	fmt.Fprintln(a.out, " 11. Save Data")
	fmt.Fprintln(a.out, "  0. Exit")
	fmt.Fprintln(a.out, "---------------------------------------------")
}

// readInput prompts and reads one trimmed line.
func (a *App) readInput(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(a.in.Text()), nil
}

// readAmount prompts for a money amount. Anything decimal cannot parse
// (including non-finite spellings like "Inf") is rejected here, before the
// ledger ever sees it.
func (a *App) readAmount(prompt string) (decimal.Decimal, bool) {
	raw, err := a.readInput(prompt)
	if err != nil {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		fmt.Fprintln(a.out, "\nInvalid amount")
		return decimal.Zero, false
	}
	return amount, true
}

// saveData persists the current ledger snapshot, reporting failures to the
// user and the log. Returns true on success.
func (a *App) saveData(ctx context.Context) bool {
	if err := a.store.Save(ctx, a.ledger.Snapshot()); err != nil {
		a.logger.Error("failed to save ledger", zap.Error(err))
		fmt.Fprintf(a.out, "\nError: %v\n", err)
		return false
	}
	return true
}
