package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/boddenberg/bankledger-go/internal/cli"
	"github.com/boddenberg/bankledger-go/internal/infra/observability"
	"github.com/boddenberg/bankledger-go/internal/infra/store"
	"github.com/boddenberg/bankledger-go/internal/ledger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	ledger *ledger.Ledger
	store  *store.JSONStore
	out    *bytes.Buffer
	path   string
}

// runSession executes one scripted menu session and returns the fixture
// for inspecting output and resulting state.
func runSession(t *testing.T, l *ledger.Ledger, input string) *fixture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank_data.json")
	metrics := observability.NewMetrics()
	s := store.NewJSONStore(path, zap.NewNop(), metrics)
	out := &bytes.Buffer{}

	app := cli.New(l, s, metrics, zap.NewNop(), strings.NewReader(input), out)
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("session failed: %v", err)
	}
	return &fixture{ledger: l, store: s, out: out, path: path}
}

func emptyLedger() *ledger.Ledger {
	return ledger.New("Test Bank", zap.NewNop(), observability.NewMetrics())
}

func TestApp_ExitSavesData(t *testing.T) {
	f := runSession(t, emptyLedger(), "0\n")

	if !strings.Contains(f.out.String(), "Goodbye") {
		t.Errorf("expected goodbye message, got:\n%s", f.out.String())
	}
	if _, err := os.Stat(f.path); err != nil {
		t.Errorf("expected snapshot file after exit: %v", err)
	}
}

func TestApp_EOFSavesData(t *testing.T) {
	// Input runs out without an explicit exit choice.
	f := runSession(t, emptyLedger(), "")

	snap, err := f.store.Load(context.Background())
	if err != nil {
		t.Fatalf("expected saved snapshot after EOF: %v", err)
	}
	if snap.Name != "Test Bank" {
		t.Errorf("expected snapshot name 'Test Bank', got %q", snap.Name)
	}
}

func TestApp_CancelledContextStillSavesData(t *testing.T) {
	l := emptyLedger()
	id, _ := l.RegisterCustomer(context.Background(), "Alice", "alice@example.com")
	if _, err := l.CreateAccount(context.Background(), id, dec("100.00")); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "bank_data.json")
	metrics := observability.NewMetrics()
	s := store.NewJSONStore(path, zap.NewNop(), metrics)
	out := &bytes.Buffer{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	app := cli.New(l, s, metrics, zap.NewNop(), strings.NewReader("8\n0\n"), out)
	if err := app.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	// The dead session context must not stop the snapshot from reaching disk.
	snap, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("expected saved snapshot after cancellation: %v", err)
	}
	if len(snap.Customers) != 1 || snap.TotalTransactions != 1 {
		t.Errorf("snapshot missing session state: %+v", snap)
	}
}

func TestApp_RegisterAndListCustomers(t *testing.T) {
	f := runSession(t, emptyLedger(), "1\nAlice\nalice@example.com\n8\n0\n")

	output := f.out.String()
	if !strings.Contains(output, "Customer registered successfully!") {
		t.Errorf("expected registration confirmation, got:\n%s", output)
	}
	if !strings.Contains(output, "Total Customers: 1") {
		t.Errorf("expected customer listing, got:\n%s", output)
	}
	if !strings.Contains(output, "No account") {
		t.Errorf("expected account-less summary in listing, got:\n%s", output)
	}
}

func TestApp_DuplicateEmailRejected(t *testing.T) {
	l := emptyLedger()
	if _, err := l.RegisterCustomer(context.Background(), "Alice", "alice@example.com"); err != nil {
		t.Fatal(err)
	}

	f := runSession(t, l, "1\nBob\nALICE@example.com\n0\n")
	if !strings.Contains(f.out.String(), "Error:") {
		t.Errorf("expected error for duplicate email, got:\n%s", f.out.String())
	}
	if len(l.ListCustomers()) != 1 {
		t.Errorf("expected one customer, got %d", len(l.ListCustomers()))
	}
}

func TestApp_DepositAndWithdraw(t *testing.T) {
	l := emptyLedger()
	ctx := context.Background()
	id, _ := l.RegisterCustomer(ctx, "Alice", "alice@example.com")
	if _, err := l.CreateAccount(ctx, id, dec("100.00")); err != nil {
		t.Fatal(err)
	}

	input := "3\n" + id + "\n25.50\n4\n" + id + "\n10\n0\n"
	f := runSession(t, l, input)

	output := f.out.String()
	if !strings.Contains(output, "Deposit successful!") || !strings.Contains(output, "$125.50") {
		t.Errorf("expected deposit confirmation with new balance, got:\n%s", output)
	}
	if !strings.Contains(output, "Withdrawal successful!") || !strings.Contains(output, "$115.50") {
		t.Errorf("expected withdrawal confirmation with new balance, got:\n%s", output)
	}
}

func TestApp_TransferBetweenCustomers(t *testing.T) {
	l := emptyLedger()
	ctx := context.Background()
	alice, _ := l.RegisterCustomer(ctx, "Alice", "alice@example.com")
	bob, _ := l.RegisterCustomer(ctx, "Bob", "bob@example.com")
	if _, err := l.CreateAccount(ctx, alice, dec("100.00")); err != nil {
		t.Fatal(err)
	}
	if _, err := l.CreateAccount(ctx, bob, decimal.Zero); err != nil {
		t.Fatal(err)
	}

	input := "5\n" + alice + "\n" + bob + "\n40\n0\n"
	f := runSession(t, l, input)

	if !strings.Contains(f.out.String(), "Transfer successful!") {
		t.Errorf("expected transfer confirmation, got:\n%s", f.out.String())
	}
	aliceAfter, _ := l.GetCustomer(alice)
	bobAfter, _ := l.GetCustomer(bob)
	if !aliceAfter.Account.Balance.Equal(dec("60")) {
		t.Errorf("expected sender balance 60, got %s", aliceAfter.Account.Balance)
	}
	if !bobAfter.Account.Balance.Equal(dec("40")) {
		t.Errorf("expected recipient balance 40, got %s", bobAfter.Account.Balance)
	}
}

func TestApp_InvalidAmountRejectedBeforeLedger(t *testing.T) {
	l := emptyLedger()
	ctx := context.Background()
	id, _ := l.RegisterCustomer(ctx, "Alice", "alice@example.com")
	if _, err := l.CreateAccount(ctx, id, dec("100.00")); err != nil {
		t.Fatal(err)
	}
	before := l.TotalTransactions()

	f := runSession(t, l, "3\n"+id+"\nnot-a-number\n0\n")

	if !strings.Contains(f.out.String(), "Invalid amount") {
		t.Errorf("expected amount rejection, got:\n%s", f.out.String())
	}
	if l.TotalTransactions() != before {
		t.Error("rejected input must not reach the ledger")
	}
}

func TestApp_InvalidMenuChoice(t *testing.T) {
	f := runSession(t, emptyLedger(), "99\n0\n")
	if !strings.Contains(f.out.String(), "Invalid choice") {
		t.Errorf("expected invalid-choice message, got:\n%s", f.out.String())
	}
}

func TestApp_TransactionHistory(t *testing.T) {
	l := emptyLedger()
	ctx := context.Background()
	id, _ := l.RegisterCustomer(ctx, "Alice", "alice@example.com")
	if _, err := l.CreateAccount(ctx, id, dec("100.00")); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Withdraw(ctx, id, dec("30")); err != nil {
		t.Fatal(err)
	}

	f := runSession(t, l, "7\n"+id+"\n0\n")

	output := f.out.String()
	if !strings.Contains(output, "Transaction History for Alice") {
		t.Errorf("expected history header, got:\n%s", output)
	}
	if !strings.Contains(output, "DEPOSIT") || !strings.Contains(output, "WITHDRAWAL") {
		t.Errorf("expected both transactions rendered, got:\n%s", output)
	}
}

func TestApp_BankStatistics(t *testing.T) {
	l := emptyLedger()
	ctx := context.Background()
	alice, _ := l.RegisterCustomer(ctx, "Alice", "alice@example.com")
	l.RegisterCustomer(ctx, "Bob", "bob@example.com")
	if _, err := l.CreateAccount(ctx, alice, dec("500.00")); err != nil {
		t.Fatal(err)
	}

	f := runSession(t, l, "10\n0\n")

	output := f.out.String()
	if !strings.Contains(output, "Customers with Accounts: 1") {
		t.Errorf("expected account count, got:\n%s", output)
	}
	if !strings.Contains(output, "Customers without Accounts: 1") {
		t.Errorf("expected account-less count, got:\n%s", output)
	}
	if !strings.Contains(output, "Richest Customer: Alice ($500.00)") {
		t.Errorf("expected richest customer, got:\n%s", output)
	}
}

func TestApp_SaveMenuOption(t *testing.T) {
	f := runSession(t, emptyLedger(), "11\n0\n")
	if !strings.Contains(f.out.String(), "Data saved successfully!") {
		t.Errorf("expected save confirmation, got:\n%s", f.out.String())
	}
}
