// Package ledger implements the bank aggregate: the customer registry, all
// mutation and query operations, and the single mutex that makes every
// operation atomic with respect to every other one.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/boddenberg/bankledger-go/internal/domain"
	"github.com/boddenberg/bankledger-go/internal/infra/observability"
	"github.com/shopspring/decimal"
)

var tracer = otel.Tracer("ledger")

// Ledger owns all customers and the global transaction counter. One mutex
// guards every operation, reads included; a multi-step transfer therefore
// needs no further isolation mechanism. Callers block until the lock is
// free; there is no timeout and no built-in retry.
type Ledger struct {
	mu sync.Mutex

	name              string
	customers         map[string]*domain.Customer
	totalTransactions uint64

	logger  *zap.Logger
	metrics *observability.Metrics
}

// Snapshot is the full persisted state of a ledger. Field names are the
// stable on-disk contract; unknown extra fields are tolerated on load.
type Snapshot struct {
	Name              string                      `json:"name"`
	Customers         map[string]*domain.Customer `json:"customers"`
	TotalTransactions uint64                      `json:"total_transactions"`
}

// New creates an empty ledger.
func New(name string, logger *zap.Logger, metrics *observability.Metrics) *Ledger {
	return &Ledger{
		name:      name,
		customers: make(map[string]*domain.Customer),
		logger:    logger,
		metrics:   metrics,
	}
}

// FromSnapshot restores a ledger from persisted state.
func FromSnapshot(snap *Snapshot, logger *zap.Logger, metrics *observability.Metrics) *Ledger {
	customers := snap.Customers
	if customers == nil {
		customers = make(map[string]*domain.Customer)
	}
	return &Ledger{
		name:              snap.Name,
		customers:         customers,
		totalTransactions: snap.TotalTransactions,
		logger:            logger,
		metrics:           metrics,
	}
}

// RegisterCustomer creates a customer with no account. Emails are unique
// across the ledger, compared case-insensitively. Returns the new customer id.
func (l *Ledger) RegisterCustomer(ctx context.Context, name, email string) (string, error) {
	_, span := tracer.Start(ctx, "Ledger.RegisterCustomer")
	defer span.End()
	defer l.observe("register_customer", time.Now())

	l.mu.Lock()
	defer l.mu.Unlock()

	lower := strings.ToLower(email)
	for _, c := range l.customers {
		if strings.ToLower(c.Email) == lower {
			l.metrics.IncrOperation("register_customer", "rejected")
			return "", &domain.ErrCustomerExists{Email: email}
		}
	}

	customer := domain.NewCustomer(name, email)
	l.customers[customer.ID] = customer

	l.metrics.IncrOperation("register_customer", "accepted")
	l.logger.Info("customer registered",
		zap.String("customer_id", customer.ID),
		zap.String("name", name),
	)
	span.SetAttributes(attribute.String("customer.id", customer.ID))

	return customer.ID, nil
}

// CreateAccount opens the customer's single account with the given initial
// deposit and counts as one ledger-mutating call on success.
func (l *Ledger) CreateAccount(ctx context.Context, customerID string, initialDeposit decimal.Decimal) (string, error) {
	_, span := tracer.Start(ctx, "Ledger.CreateAccount")
	defer span.End()
	defer l.observe("create_account", time.Now())
	span.SetAttributes(attribute.String("customer.id", customerID))

	l.mu.Lock()
	defer l.mu.Unlock()

	customer, ok := l.customers[customerID]
	if !ok {
		l.metrics.IncrOperation("create_account", "rejected")
		return "", &domain.ErrCustomerNotFound{ID: customerID}
	}

	if err := customer.OpenAccount(initialDeposit); err != nil {
		l.metrics.IncrOperation("create_account", "rejected")
		return "", err
	}
	l.totalTransactions++

	l.metrics.IncrOperation("create_account", "accepted")
	l.logger.Info("account created",
		zap.String("customer_id", customerID),
		zap.String("account_id", customer.AccountID()),
		zap.String("initial_deposit", initialDeposit.StringFixed(2)),
	)

	return customer.AccountID(), nil
}

// GetCustomer returns a deep copy of the customer; ledger internals are
// never handed out.
func (l *Ledger) GetCustomer(customerID string) (*domain.Customer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	customer, ok := l.customers[customerID]
	if !ok {
		return nil, &domain.ErrCustomerNotFound{ID: customerID}
	}
	return customer.Clone(), nil
}

// ListCustomers returns copies of all customers ordered by registration time.
func (l *Ledger) ListCustomers() []*domain.Customer {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*domain.Customer, 0, len(l.customers))
	for _, c := range l.customers {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RegisteredAt.Equal(out[j].RegisteredAt) {
			return out[i].RegisteredAt.Before(out[j].RegisteredAt)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// FindCustomersByName returns copies of customers whose name contains the
// query, case-insensitively.
func (l *Ledger) FindCustomersByName(query string) []*domain.Customer {
	l.mu.Lock()
	defer l.mu.Unlock()

	lower := strings.ToLower(query)
	out := make([]*domain.Customer, 0)
	for _, c := range l.customers {
		if strings.Contains(strings.ToLower(c.Name), lower) {
			out = append(out, c.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// TotalBankBalance sums the balances of all customers that have an account.
func (l *Ledger) TotalBankBalance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := decimal.Zero
	for _, c := range l.customers {
		if c.Account != nil {
			total = total.Add(c.Account.Balance)
		}
	}
	return total
}

// TotalTransactions returns the global activity counter: one per accepted
// create-account/deposit/withdraw, two per accepted transfer.
func (l *Ledger) TotalTransactions() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalTransactions
}

// Name returns the ledger's display name.
func (l *Ledger) Name() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.name
}

// Summary implements domain.Summarizable.
func (l *Ledger) Summary() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := decimal.Zero
	for _, c := range l.customers {
		if c.Account != nil {
			total = total.Add(c.Account.Balance)
		}
	}
	return fmt.Sprintf("Bank: %s, Customers: %d, Total Balance: $%s, Transactions: %d",
		l.name, len(l.customers), total.StringFixed(2), l.totalTransactions)
}

// Snapshot exports the full ledger state for persistence. Customers are
// deep-copied so a concurrent mutation cannot race the encoder.
func (l *Ledger) Snapshot() *Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	customers := make(map[string]*domain.Customer, len(l.customers))
	for id, c := range l.customers {
		customers[id] = c.Clone()
	}
	return &Snapshot{
		Name:              l.name,
		Customers:         customers,
		TotalTransactions: l.totalTransactions,
	}
}

// observe records the operation duration metric.
func (l *Ledger) observe(operation string, start time.Time) {
	l.metrics.RecordOperationDuration(operation, time.Since(start))
}
