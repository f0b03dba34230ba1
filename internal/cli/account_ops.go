package cli

import (
	"context"
	"fmt"
)

func (a *App) createAccount(ctx context.Context) {
	fmt.Fprintln(a.out, "\n--- Create Account ---")

	customerID, err := a.readInput("Enter customer ID: ")
	if err != nil {
		return
	}
	amount, ok := a.readAmount("Enter initial deposit amount: ")
	if !ok {
		return
	}

	accountID, err := a.ledger.CreateAccount(ctx, customerID, amount)
	if err != nil {
		fmt.Fprintf(a.out, "\nError: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, "\nAccount created successfully!")
	fmt.Fprintf(a.out, "Account ID: %s\n", accountID)
	fmt.Fprintf(a.out, "Initial Balance: $%s\n", amount.StringFixed(2))
}

func (a *App) depositMoney(ctx context.Context) {
	fmt.Fprintln(a.out, "\n--- Deposit Money ---")

	customerID, err := a.readInput("Enter customer ID: ")
	if err != nil {
		return
	}
	amount, ok := a.readAmount("Enter amount to deposit: ")
	if !ok {
		return
	}

	balance, err := a.ledger.Deposit(ctx, customerID, amount)
	if err != nil {
		fmt.Fprintf(a.out, "\nError: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, "\nDeposit successful!")
	fmt.Fprintf(a.out, "New Balance: $%s\n", balance.StringFixed(2))
}

func (a *App) withdrawMoney(ctx context.Context) {
	fmt.Fprintln(a.out, "\n--- Withdraw Money ---")

	customerID, err := a.readInput("Enter customer ID: ")
	if err != nil {
		return
	}
	amount, ok := a.readAmount("Enter amount to withdraw: ")
	if !ok {
		return
	}

	balance, err := a.ledger.Withdraw(ctx, customerID, amount)
	if err != nil {
		fmt.Fprintf(a.out, "\nError: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, "\nWithdrawal successful!")
	fmt.Fprintf(a.out, "New Balance: $%s\n", balance.StringFixed(2))
}

func (a *App) transferMoney(ctx context.Context) {
	fmt.Fprintln(a.out, "\n--- Transfer Money ---")

	fromID, err := a.readInput("Enter sender customer ID: ")
	if err != nil {
		return
	}
	toID, err := a.readInput("Enter recipient customer ID: ")
	if err != nil {
		return
	}
	amount, ok := a.readAmount("Enter amount to transfer: ")
	if !ok {
		return
	}

	if err := a.ledger.Transfer(ctx, fromID, toID, amount); err != nil {
		fmt.Fprintf(a.out, "\nError: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, "\nTransfer successful!")
	fmt.Fprintf(a.out, "$%s transferred\n", amount.StringFixed(2))
}
