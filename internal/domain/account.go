package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a balance-bearing entity with an append-only transaction log.
// It is owned by exactly one Customer and never destroyed once created.
//
// Invariant: Balance is never negative and always equals the BalanceAfter of
// the last transaction (or the initial deposit when the log is empty).
type Account struct {
	ID           string          `json:"id"`
	Balance      decimal.Decimal `json:"balance"`
	Transactions []Transaction   `json:"transactions"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewAccount creates an account holding initialDeposit. A negative initial
// deposit is rejected; a positive one is recorded as the account's first
// deposit transaction, a zero one leaves the log empty.
func NewAccount(initialDeposit decimal.Decimal) (*Account, error) {
	if initialDeposit.IsNegative() {
		return nil, &ErrInvalidAmount{Amount: initialDeposit}
	}

	account := &Account{
		ID:        uuid.New().String(),
		Balance:   initialDeposit,
		CreatedAt: time.Now().UTC(),
	}

	if initialDeposit.IsPositive() {
		account.Transactions = append(account.Transactions,
			NewTransaction(TransactionDeposit, initialDeposit, initialDeposit))
	}

	return account, nil
}

// Deposit adds amount to the balance and appends a deposit transaction.
// Returns the new balance.
func (a *Account) Deposit(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, &ErrInvalidAmount{Amount: amount}
	}

	a.Balance = a.Balance.Add(amount)
	a.Transactions = append(a.Transactions,
		NewTransaction(TransactionDeposit, amount, a.Balance))

	return a.Balance, nil
}

// Withdraw removes amount from the balance and appends a withdrawal
// transaction. Rejects non-positive amounts and amounts exceeding the
// balance without touching any state. Returns the new balance.
func (a *Account) Withdraw(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, &ErrInvalidAmount{Amount: amount}
	}
	if a.Balance.LessThan(amount) {
		return decimal.Zero, &ErrInsufficientFunds{Available: a.Balance, Requested: amount}
	}

	a.Balance = a.Balance.Sub(amount)
	a.Transactions = append(a.Transactions,
		NewTransaction(TransactionWithdrawal, amount, a.Balance))

	return a.Balance, nil
}

// TransactionHistory returns the account's transactions in append order.
// Callers must treat the slice as read-only.
func (a *Account) TransactionHistory() []Transaction {
	return a.Transactions
}

// TotalDeposits sums the amounts of all deposit transactions.
func (a *Account) TotalDeposits() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range a.Transactions {
		if tx.Type == TransactionDeposit {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// TotalWithdrawals sums the amounts of all withdrawal transactions.
// A transfer_out is a reclassified withdrawal and counts here too.
func (a *Account) TotalWithdrawals() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range a.Transactions {
		if tx.Type == TransactionWithdrawal || tx.Type == TransactionTransferOut {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// MarkLastTransferOut reclassifies the most recent transaction as the source
// leg of a transfer to the given account. This is the only mutation ever
// applied to a recorded transaction; the transfer protocol invokes it on the
// withdrawal it just created. No-op when the log is empty.
func (a *Account) MarkLastTransferOut(toAccountID string) {
	if len(a.Transactions) == 0 {
		return
	}
	last := &a.Transactions[len(a.Transactions)-1]
	last.Type = TransactionTransferOut
	last.ToAccountID = toAccountID
}

// Clone returns a deep copy of the account, including its transaction log.
func (a *Account) Clone() *Account {
	cp := *a
	cp.Transactions = make([]Transaction, len(a.Transactions))
	copy(cp.Transactions, a.Transactions)
	return &cp
}
