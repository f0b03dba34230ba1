package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Error types for consistent error handling across the ledger. Every core
// operation either completes fully or returns one of these without mutating
// any state.

// ErrCustomerNotFound indicates no customer is registered under the given id.
type ErrCustomerNotFound struct {
	ID string
}

func (e *ErrCustomerNotFound) Error() string {
	return fmt.Sprintf("customer '%s' not found", e.ID)
}

// ErrAccountNotFound indicates the customer exists but has no account yet.
type ErrAccountNotFound struct {
	CustomerID string
}

func (e *ErrAccountNotFound) Error() string {
	return fmt.Sprintf("account for customer '%s' not found", e.CustomerID)
}

// ErrInsufficientFunds indicates not enough balance for a withdrawal or
// transfer. Available is the balance at the time of the rejected request.
type ErrInsufficientFunds struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *ErrInsufficientFunds) Error() string {
	return fmt.Sprintf("insufficient funds: available $%s, requested $%s",
		e.Available.StringFixed(2), e.Requested.StringFixed(2))
}

// ErrInvalidAmount indicates a zero or negative amount.
type ErrInvalidAmount struct {
	Amount decimal.Decimal
}

func (e *ErrInvalidAmount) Error() string {
	return fmt.Sprintf("invalid amount: $%s", e.Amount.StringFixed(2))
}

// ErrCustomerExists indicates a registration clashed with an existing
// customer's email (compared case-insensitively).
type ErrCustomerExists struct {
	Email string
}

func (e *ErrCustomerExists) Error() string {
	return fmt.Sprintf("customer '%s' already exists", e.Email)
}

// ErrAccountExists indicates the customer already opened their account.
type ErrAccountExists struct {
	CustomerID string
}

func (e *ErrAccountExists) Error() string {
	return fmt.Sprintf("customer '%s' already has an account", e.CustomerID)
}

// ErrIO wraps a filesystem failure during persistence.
type ErrIO struct {
	Err error
}

func (e *ErrIO) Error() string {
	return fmt.Sprintf("io error: %v", e.Err)
}

func (e *ErrIO) Unwrap() error {
	return e.Err
}

// ErrSerialization wraps an encode/decode failure during persistence.
type ErrSerialization struct {
	Err error
}

func (e *ErrSerialization) Error() string {
	return fmt.Sprintf("serialization error: %v", e.Err)
}

func (e *ErrSerialization) Unwrap() error {
	return e.Err
}
