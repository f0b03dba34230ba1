// Package domain holds the ledger's core entities: transactions, accounts,
// customers, and the shared error types. All money is decimal to keep
// arithmetic exact across deposits, withdrawals, and transfers.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a balance-affecting event.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
	// TransactionTransferOut marks the source leg of a transfer. It only ever
	// appears via reclassification of a just-recorded withdrawal.
	TransactionTransferOut TransactionType = "transfer_out"
)

// Transaction is one immutable record in an account's history. The single
// permitted mutation is the reclassification of a withdrawal to transfer_out,
// performed by Account.MarkLastTransferOut during a transfer.
type Transaction struct {
	ID           string          `json:"id"`
	Type         TransactionType `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Timestamp    time.Time       `json:"timestamp"`
	BalanceAfter decimal.Decimal `json:"balance_after"`

	// ToAccountID is set only for transfer_out.
	ToAccountID string `json:"to_account_id,omitempty"`
}

// NewTransaction creates a transaction with a fresh UUID and the current
// UTC timestamp.
func NewTransaction(txType TransactionType, amount, balanceAfter decimal.Decimal) Transaction {
	return Transaction{
		ID:           uuid.New().String(),
		Type:         txType,
		Amount:       amount,
		Timestamp:    time.Now().UTC(),
		BalanceAfter: balanceAfter,
	}
}

// String renders the transaction for history listings, e.g.
// "[2024-05-01 10:32:11] DEPOSIT $50.00 - Balance: $150.00".
func (t Transaction) String() string {
	label := ""
	switch t.Type {
	case TransactionDeposit:
		label = "DEPOSIT"
	case TransactionWithdrawal:
		label = "WITHDRAWAL"
	case TransactionTransferOut:
		label = fmt.Sprintf("TRANSFER to %s", shortID(t.ToAccountID))
	default:
		label = string(t.Type)
	}

	return fmt.Sprintf("[%s] %s $%s - Balance: $%s",
		t.Timestamp.Format("2006-01-02 15:04:05"),
		label,
		t.Amount.StringFixed(2),
		t.BalanceAfter.StringFixed(2),
	)
}

// shortID returns the first 8 characters of an id for display purposes.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
