package cli

import (
	"context"
	"fmt"
)

func (a *App) registerCustomer(ctx context.Context) {
	fmt.Fprintln(a.out, "\n--- Register New Customer ---")

	name, err := a.readInput("Enter customer name: ")
	if err != nil {
		return
	}
	email, err := a.readInput("Enter customer email: ")
	if err != nil {
		return
	}

	customerID, err := a.ledger.RegisterCustomer(ctx, name, email)
	if err != nil {
		fmt.Fprintf(a.out, "\nError: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, "\nCustomer registered successfully!")
	fmt.Fprintf(a.out, "Customer ID: %s\n", customerID)
}

func (a *App) listAllCustomers() {
	fmt.Fprintln(a.out, "\n--- All Customers ---")

	customers := a.ledger.ListCustomers()
	if len(customers) == 0 {
		fmt.Fprintln(a.out, "\nNo customers registered yet.")
		return
	}

	fmt.Fprintf(a.out, "\nTotal Customers: %d\n", len(customers))
	for _, c := range customers {
		fmt.Fprintf(a.out, "  - %s\n", c.Summary())
	}
}

func (a *App) searchCustomers() {
	fmt.Fprintln(a.out, "\n--- Search Customers ---")

	query, err := a.readInput("Enter search query (name): ")
	if err != nil {
		return
	}

	results := a.ledger.FindCustomersByName(query)
	if len(results) == 0 {
		fmt.Fprintf(a.out, "\nNo customers found matching '%s'\n", query)
		return
	}

	fmt.Fprintf(a.out, "\nFound %d customer(s):\n", len(results))
	for _, c := range results {
		fmt.Fprintf(a.out, "  - %s\n", c.Summary())
	}
}

func (a *App) viewAccountDetails() {
	fmt.Fprintln(a.out, "\n--- Account Details ---")

	customerID, err := a.readInput("Enter customer ID: ")
	if err != nil {
		return
	}

	customer, err := a.ledger.GetCustomer(customerID)
	if err != nil {
		fmt.Fprintf(a.out, "\nError: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "\n%s\n", customer.Summary())
	if customer.Account != nil {
		fmt.Fprintln(a.out, "\nAccount Statistics:")
		fmt.Fprintf(a.out, "  Total Deposits: $%s\n", customer.Account.TotalDeposits().StringFixed(2))
		fmt.Fprintf(a.out, "  Total Withdrawals: $%s\n", customer.Account.TotalWithdrawals().StringFixed(2))
		fmt.Fprintf(a.out, "  Transaction Count: %d\n", len(customer.Account.Transactions))
	}
}
