package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a store transaction.
	// This prevents long-running transactions from blocking rows.
	DefaultTransactionTimeout = 10 * time.Second

	// DashboardRecentTransactions is how many records the dashboard shows.
	DashboardRecentTransactions = 10

	// AccountNumberAttempts bounds regeneration on account number collision.
	AccountNumberAttempts = 5
)
