package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies what kind of balance movement a record describes.
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "deposit"
	TransactionTypeWithdrawal  TransactionType = "withdrawal"
	TransactionTypeTransferOut TransactionType = "transfer_out"
	TransactionTypeTransferIn  TransactionType = "transfer_in"
	TransactionTypeInvestment  TransactionType = "investment"
)

// TransactionStatus is a one-way-forward state machine:
// pending -> completed or pending -> failed. No other transitions.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is the audit record written alongside every balance mutation.
// CreatedAt is immutable once set.
type Transaction struct {
	ID              string
	UserID          string
	AccountID       string
	TransactionType TransactionType
	Amount          decimal.Decimal
	Description     string
	ToAccount       string
	Status          TransactionStatus
	CreatedAt       time.Time
}

// Validate validates a transaction record before persistence.
func (t *Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// CanApprove reports whether the transaction may move to completed.
func (t *Transaction) CanApprove() bool {
	return t.Status == TransactionStatusPending
}
