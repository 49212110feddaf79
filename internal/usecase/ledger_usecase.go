package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/metrics"
)

// LedgerUseCase applies balance-affecting operations to accounts and writes
// the matching transaction records. Every mutation runs inside a single
// store transaction with the touched accounts row-locked, so concurrent
// operations against the same account are serialized by the store.
type LedgerUseCase struct {
	txManager       TxManager
	retrier         Retrier
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	idGen           IDGenerator
	metrics         *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase. retrier may be nil, in
// which case transient store failures are not retried.
func NewLedgerUseCase(
	txManager TxManager,
	retrier Retrier,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:       txManager,
		retrier:         retrier,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		idGen:           idGen,
		metrics:         metrics,
	}
}

// DepositInput represents a deposit request from an authenticated caller.
type DepositInput struct {
	UserID      string
	AccountID   string
	Amount      decimal.Decimal
	Description string
}

// MutationResult reports the outcome of a single-account mutation.
type MutationResult struct {
	Transaction *domain.Transaction
	NewBalance  decimal.Decimal
}

// Deposit increases the account balance by amount and records a completed
// deposit transaction.
func (uc *LedgerUseCase) Deposit(ctx context.Context, input DepositInput) (*MutationResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var result *MutationResult

	err := runInTx(ctx, uc.txManager, uc.retrier, func(txCtx context.Context, tx Tx) error {
		account, err := uc.lockOwnedAccount(txCtx, tx, input.AccountID, input.UserID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		newBalance := account.ApplyCredit(input.Amount)

		if err := uc.accountRepo.UpdateBalance(txCtx, tx, account.ID, newBalance, now); err != nil {
			return err
		}

		txn := &domain.Transaction{
			ID:              uc.idGen.Generate(),
			UserID:          input.UserID,
			AccountID:       account.ID,
			TransactionType: domain.TransactionTypeDeposit,
			Amount:          input.Amount,
			Description:     input.Description,
			Status:          domain.TransactionStatusCompleted,
			CreatedAt:       now,
		}

		if err := uc.transactionRepo.Create(txCtx, tx, txn); err != nil {
			return err
		}

		result = &MutationResult{Transaction: txn, NewBalance: newBalance}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DepositsTotal.Inc()
	}

	return result, nil
}

// WithdrawInput represents a withdrawal request.
type WithdrawInput struct {
	UserID      string
	AccountID   string
	Amount      decimal.Decimal
	Description string
}

// Withdraw decreases the account balance by amount and records a completed
// withdrawal transaction. Fails with ErrInsufficientFunds when the balance
// is strictly less than amount; withdrawing the full balance is allowed.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*MutationResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var result *MutationResult

	err := runInTx(ctx, uc.txManager, uc.retrier, func(txCtx context.Context, tx Tx) error {
		account, err := uc.lockOwnedAccount(txCtx, tx, input.AccountID, input.UserID)
		if err != nil {
			return err
		}

		if err := account.ValidateWithdrawal(input.Amount); err != nil {
			return err
		}

		now := time.Now().UTC()
		newBalance := account.ApplyDebit(input.Amount)

		if err := uc.accountRepo.UpdateBalance(txCtx, tx, account.ID, newBalance, now); err != nil {
			return err
		}

		txn := &domain.Transaction{
			ID:              uc.idGen.Generate(),
			UserID:          input.UserID,
			AccountID:       account.ID,
			TransactionType: domain.TransactionTypeWithdrawal,
			Amount:          input.Amount,
			Description:     input.Description,
			Status:          domain.TransactionStatusCompleted,
			CreatedAt:       now,
		}

		if err := uc.transactionRepo.Create(txCtx, tx, txn); err != nil {
			return err
		}

		result = &MutationResult{Transaction: txn, NewBalance: newBalance}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WithdrawalsTotal.Inc()
	}

	return result, nil
}

// TransferInput represents a transfer request. ToAccountNumber addresses the
// recipient account; recipient ownership is not checked, transfers to any
// account in the system are allowed.
type TransferInput struct {
	UserID          string
	FromAccountID   string
	ToAccountNumber string
	Amount          decimal.Decimal
}

// TransferResult reports both legs of a completed transfer.
type TransferResult struct {
	OutTransaction *domain.Transaction
	InTransaction  *domain.Transaction
	NewBalance     decimal.Decimal
}

// Transfer atomically moves amount between two accounts and records a
// transfer_out/transfer_in pair in the same commit. Either both legs are
// durable or neither is.
func (uc *LedgerUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if input.ToAccountNumber == "" {
		return nil, domain.ErrMissingRecipient
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	// Resolve the recipient before locking anything.
	recipient, err := uc.accountRepo.GetByNumber(ctx, input.ToAccountNumber)
	if err != nil {
		return nil, domain.ErrRecipientNotFound
	}

	var result *TransferResult

	err = runInTx(ctx, uc.txManager, uc.retrier, func(txCtx context.Context, tx Tx) error {
		// Lock both rows in sorted id order (deadlock prevention).
		ids := uniqueSorted(input.FromAccountID, recipient.ID)

		accounts, err := uc.accountRepo.GetByIDsForUpdate(txCtx, tx, ids)
		if err != nil {
			return err
		}

		accountMap := make(map[string]*domain.Account, len(accounts))
		for _, a := range accounts {
			accountMap[a.ID] = a
		}

		from := accountMap[input.FromAccountID]
		if from == nil || !from.OwnedBy(input.UserID) {
			return domain.ErrAccountNotFound
		}

		to := accountMap[recipient.ID]
		if to == nil {
			return domain.ErrRecipientNotFound
		}

		if err := from.ValidateWithdrawal(input.Amount); err != nil {
			return err
		}

		now := time.Now().UTC()

		fromBalance := from.ApplyDebit(input.Amount)
		if err := uc.accountRepo.UpdateBalance(txCtx, tx, from.ID, fromBalance, now); err != nil {
			return err
		}
		from.Balance = fromBalance

		toBalance := to.ApplyCredit(input.Amount)
		if err := uc.accountRepo.UpdateBalance(txCtx, tx, to.ID, toBalance, now); err != nil {
			return err
		}
		to.Balance = toBalance

		outTxn := &domain.Transaction{
			ID:              uc.idGen.Generate(),
			UserID:          input.UserID,
			AccountID:       from.ID,
			TransactionType: domain.TransactionTypeTransferOut,
			Amount:          input.Amount,
			Description:     fmt.Sprintf("Transfer to %s", input.ToAccountNumber),
			ToAccount:       input.ToAccountNumber,
			Status:          domain.TransactionStatusCompleted,
			CreatedAt:       now,
		}

		if err := uc.transactionRepo.Create(txCtx, tx, outTxn); err != nil {
			return err
		}

		inTxn := &domain.Transaction{
			ID:              uc.idGen.Generate(),
			UserID:          to.UserID,
			AccountID:       to.ID,
			TransactionType: domain.TransactionTypeTransferIn,
			Amount:          input.Amount,
			Description:     fmt.Sprintf("Transfer from %s", from.AccountNumber),
			Status:          domain.TransactionStatusCompleted,
			CreatedAt:       now,
		}

		if err := uc.transactionRepo.Create(txCtx, tx, inTxn); err != nil {
			return err
		}

		result = &TransferResult{
			OutTransaction: outTxn,
			InTransaction:  inTxn,
			NewBalance:     from.Balance,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersTotal.Inc()
	}

	return result, nil
}

// ApproveTransaction moves a pending transaction to completed. The record
// must belong to the caller; anything else looks like a missing transaction.
// Approving a record that is not pending fails with
// ErrInvalidTransactionState.
func (uc *LedgerUseCase) ApproveTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	var approved *domain.Transaction

	err := runInTx(ctx, uc.txManager, uc.retrier, func(txCtx context.Context, tx Tx) error {
		txn, err := uc.transactionRepo.GetByIDForUpdate(txCtx, tx, transactionID)
		if err != nil {
			return err
		}

		if txn.UserID != userID {
			return domain.ErrTransactionNotFound
		}

		if !txn.CanApprove() {
			return domain.ErrInvalidTransactionState
		}

		if err := uc.transactionRepo.UpdateStatus(txCtx, tx, txn.ID, domain.TransactionStatusCompleted); err != nil {
			return err
		}

		txn.Status = domain.TransactionStatusCompleted
		approved = txn

		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ApprovalsTotal.Inc()
	}

	return approved, nil
}

// lockOwnedAccount locks an account row and verifies caller ownership.
// A foreign account is indistinguishable from a missing one.
func (uc *LedgerUseCase) lockOwnedAccount(ctx context.Context, tx Tx, accountID, userID string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	if !account.OwnedBy(userID) {
		return nil, domain.ErrAccountNotFound
	}

	return account, nil
}

func uniqueSorted(ids ...string) []string {
	seen := make(map[string]bool, len(ids))

	var out []string
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	sort.Strings(out)

	return out
}
