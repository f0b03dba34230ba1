package cli

import (
	"fmt"

	"github.com/boddenberg/bankledger-go/internal/domain"
)

func (a *App) viewTransactionHistory() {
	fmt.Fprintln(a.out, "\n--- Transaction History ---")

	customerID, err := a.readInput("Enter customer ID: ")
	if err != nil {
		return
	}

	customer, err := a.ledger.GetCustomer(customerID)
	if err != nil {
		fmt.Fprintf(a.out, "\nError: %v\n", err)
		return
	}
	if customer.Account == nil {
		fmt.Fprintln(a.out, "\nCustomer has no account")
		return
	}

	history := customer.Account.TransactionHistory()
	if len(history) == 0 {
		fmt.Fprintln(a.out, "\nNo transactions yet.")
		return
	}

	fmt.Fprintf(a.out, "\nTransaction History for %s:\n", customer.Name)
	for i, tx := range history {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, tx)
	}
}

func (a *App) viewBankStatistics() {
	fmt.Fprintln(a.out, "\n--- Bank Statistics ---")

	fmt.Fprintf(a.out, "\n%s\n", a.ledger.Summary())

	customers := a.ledger.ListCustomers()
	withAccounts := 0
	var richest *domain.Customer
	for _, c := range customers {
		if c.Account == nil {
			continue
		}
		withAccounts++
		if richest == nil || c.Account.Balance.GreaterThan(richest.Account.Balance) {
			richest = c
		}
	}

	fmt.Fprintf(a.out, "Customers with Accounts: %d\n", withAccounts)
	fmt.Fprintf(a.out, "Customers without Accounts: %d\n", len(customers)-withAccounts)
	if richest != nil {
		fmt.Fprintf(a.out, "Richest Customer: %s ($%s)\n",
			richest.Name, richest.Account.Balance.StringFixed(2))
	}

	stats := a.metrics.GetStats()
	fmt.Fprintln(a.out, "\nSession Counters:")
	fmt.Fprintf(a.out, "  Operations Accepted: %.0f\n", stats.OperationsAccepted)
	fmt.Fprintf(a.out, "  Operations Rejected: %.0f\n", stats.OperationsRejected)
	fmt.Fprintf(a.out, "  Snapshot Saves: %.0f\n", stats.SnapshotSaves)
	fmt.Fprintf(a.out, "  Snapshot Loads: %.0f\n", stats.SnapshotLoads)
}
