package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer owns at most one Account. An account never exists without an
// owning customer.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	// Account stays nil until the customer opens one.
	Account *Account `json:"account,omitempty"`

	RegisteredAt time.Time `json:"registered_at"`
}

// NewCustomer creates a customer with a fresh id and no account.
func NewCustomer(name, email string) *Customer {
	return &Customer{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		RegisteredAt: time.Now().UTC(),
	}
}

// OpenAccount creates the customer's single account with the given initial
// deposit. Fails with ErrAccountExists when one is already open.
func (c *Customer) OpenAccount(initialDeposit decimal.Decimal) error {
	if c.Account != nil {
		return &ErrAccountExists{CustomerID: c.ID}
	}

	account, err := NewAccount(initialDeposit)
	if err != nil {
		return err
	}
	c.Account = account
	return nil
}

// GetAccount returns the customer's account or ErrAccountNotFound when none
// has been opened yet.
func (c *Customer) GetAccount() (*Account, error) {
	if c.Account == nil {
		return nil, &ErrAccountNotFound{CustomerID: c.ID}
	}
	return c.Account, nil
}

// HasAccount reports whether the customer opened their account.
func (c *Customer) HasAccount() bool {
	return c.Account != nil
}

// AccountID returns the account id, or "" when no account exists.
func (c *Customer) AccountID() string {
	if c.Account == nil {
		return ""
	}
	return c.Account.ID
}

// Clone returns a deep copy of the customer, detached from ledger internals.
func (c *Customer) Clone() *Customer {
	cp := *c
	if c.Account != nil {
		cp.Account = c.Account.Clone()
	}
	return &cp
}

// Summary implements Summarizable.
func (c *Customer) Summary() string {
	accountInfo := "No account"
	if c.Account != nil {
		accountInfo = fmt.Sprintf("Account: %s, Balance: $%s",
			shortID(c.Account.ID), c.Account.Balance.StringFixed(2))
	}
	return fmt.Sprintf("Customer: %s (%s), %s", c.Name, shortID(c.ID), accountInfo)
}
