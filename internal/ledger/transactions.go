package ledger

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/boddenberg/bankledger-go/internal/domain"
	"github.com/shopspring/decimal"
)

// Deposit adds amount to the customer's account and returns the new balance.
func (l *Ledger) Deposit(ctx context.Context, customerID string, amount decimal.Decimal) (decimal.Decimal, error) {
	_, span := tracer.Start(ctx, "Ledger.Deposit")
	defer span.End()
	defer l.observe("deposit", time.Now())
	span.SetAttributes(attribute.String("customer.id", customerID))

	l.mu.Lock()
	defer l.mu.Unlock()

	account, err := l.accountOf(customerID)
	if err != nil {
		l.metrics.IncrOperation("deposit", "rejected")
		return decimal.Zero, err
	}

	balance, err := account.Deposit(amount)
	if err != nil {
		l.metrics.IncrOperation("deposit", "rejected")
		return decimal.Zero, err
	}
	l.totalTransactions++

	l.metrics.IncrOperation("deposit", "accepted")
	l.logger.Info("deposit accepted",
		zap.String("customer_id", customerID),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("balance", balance.StringFixed(2)),
	)

	return balance, nil
}

// Withdraw removes amount from the customer's account and returns the new
// balance. Insufficient funds reject the call without mutating anything.
func (l *Ledger) Withdraw(ctx context.Context, customerID string, amount decimal.Decimal) (decimal.Decimal, error) {
	_, span := tracer.Start(ctx, "Ledger.Withdraw")
	defer span.End()
	defer l.observe("withdraw", time.Now())
	span.SetAttributes(attribute.String("customer.id", customerID))

	l.mu.Lock()
	defer l.mu.Unlock()

	account, err := l.accountOf(customerID)
	if err != nil {
		l.metrics.IncrOperation("withdraw", "rejected")
		return decimal.Zero, err
	}

	balance, err := account.Withdraw(amount)
	if err != nil {
		l.metrics.IncrOperation("withdraw", "rejected")
		return decimal.Zero, err
	}
	l.totalTransactions++

	l.metrics.IncrOperation("withdraw", "accepted")
	l.logger.Info("withdrawal accepted",
		zap.String("customer_id", customerID),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("balance", balance.StringFixed(2)),
	)

	return balance, nil
}

// Transfer moves amount from one customer's account to another's. The whole
// protocol runs under the ledger lock, so no other operation interleaves:
//
//  1. resolve both customers and both accounts; every lookup failure
//     happens before any mutation
//  2. withdraw from the source (invalid amount / insufficient funds abort
//     here, still before any mutation)
//  3. deposit into the destination
//  4. reclassify the source's just-recorded withdrawal as transfer_out to
//     the destination account
//  5. count two ledger-mutating calls
//
// Money is conserved: once step 2 succeeds nothing can fail, so funds never
// leave the source without arriving at the destination.
func (l *Ledger) Transfer(ctx context.Context, fromCustomerID, toCustomerID string, amount decimal.Decimal) error {
	_, span := tracer.Start(ctx, "Ledger.Transfer")
	defer span.End()
	defer l.observe("transfer", time.Now())
	span.SetAttributes(
		attribute.String("customer.from", fromCustomerID),
		attribute.String("customer.to", toCustomerID),
	)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.customers[fromCustomerID]; !ok {
		l.metrics.IncrOperation("transfer", "rejected")
		return &domain.ErrCustomerNotFound{ID: fromCustomerID}
	}
	if _, ok := l.customers[toCustomerID]; !ok {
		l.metrics.IncrOperation("transfer", "rejected")
		return &domain.ErrCustomerNotFound{ID: toCustomerID}
	}

	fromAccount, err := l.accountOf(fromCustomerID)
	if err != nil {
		l.metrics.IncrOperation("transfer", "rejected")
		return err
	}
	toAccount, err := l.accountOf(toCustomerID)
	if err != nil {
		l.metrics.IncrOperation("transfer", "rejected")
		return err
	}

	if _, err := fromAccount.Withdraw(amount); err != nil {
		l.metrics.IncrOperation("transfer", "rejected")
		return err
	}
	if _, err := toAccount.Deposit(amount); err != nil {
		// Unreachable: the amount was already accepted by Withdraw.
		l.metrics.IncrOperation("transfer", "rejected")
		return err
	}

	fromAccount.MarkLastTransferOut(toAccount.ID)
	l.totalTransactions += 2 // withdrawal + deposit

	l.metrics.IncrOperation("transfer", "accepted")
	l.logger.Info("transfer accepted",
		zap.String("from_customer_id", fromCustomerID),
		zap.String("to_customer_id", toCustomerID),
		zap.String("amount", amount.StringFixed(2)),
	)

	return nil
}

// accountOf resolves a customer's account. Callers must hold l.mu.
func (l *Ledger) accountOf(customerID string) (*domain.Account, error) {
	customer, ok := l.customers[customerID]
	if !ok {
		return nil, &domain.ErrCustomerNotFound{ID: customerID}
	}
	return customer.GetAccount()
}
