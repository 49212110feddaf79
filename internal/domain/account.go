package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account types. The column is an open string; these are the values the
// system itself creates.
const (
	AccountTypeSavings     = "Savings"
	AccountTypeCurrent     = "Current"
	AccountTypeDigitalGold = "Digital Gold"
)

// DefaultCurrency is assigned to accounts created at registration.
const DefaultCurrency = "INR"

// Account represents a customer account holding a balance. Balance is the
// authoritative running sum of all completed operations; it is only ever
// mutated by the ledger use cases inside a store transaction.
type Account struct {
	ID            string
	UserID        string
	AccountNumber string
	AccountType   string
	Balance       decimal.Decimal
	Currency      string
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidateWithdrawal checks if amount can be taken from the account.
// Withdrawing the exact balance is allowed; the account drains to zero.
func (a *Account) ValidateWithdrawal(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns the balance after removing amount.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after adding amount.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// OwnedBy reports whether the account belongs to the given user.
func (a *Account) OwnedBy(userID string) bool {
	return a.UserID == userID
}
