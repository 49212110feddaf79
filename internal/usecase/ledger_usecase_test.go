package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
	"github.com/iho/gobank/internal/usecase/mocks"
)

func newLedgerFixture() (*usecase.LedgerUseCase, *mocks.MockAccountRepository, *mocks.MockTransactionRepository, *mocks.MockTxManager) {
	accRepo := mocks.NewMockAccountRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	txMgr := mocks.NewMockTxManager()
	idGen := mocks.NewMockIDGenerator()

	uc := usecase.NewLedgerUseCase(txMgr, nil, accRepo, txnRepo, idGen, nil)

	return uc, accRepo, txnRepo, txMgr
}

func seedAccount(repo *mocks.MockAccountRepository, id, userID, number string, balance int64) {
	now := time.Now().UTC()
	repo.Seed(&domain.Account{
		ID:            id,
		UserID:        userID,
		AccountNumber: number,
		AccountType:   domain.AccountTypeSavings,
		Balance:       decimal.NewFromInt(balance),
		Currency:      domain.DefaultCurrency,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

func TestLedgerUseCase_Deposit(t *testing.T) {
	tests := []struct {
		name      string
		userID    string
		accountID string
		amount    decimal.Decimal
		errorType error
	}{
		{
			name:      "successful deposit",
			userID:    "user-1",
			accountID: "acc-1",
			amount:    decimal.NewFromInt(500),
		},
		{
			name:      "zero amount rejected",
			userID:    "user-1",
			accountID: "acc-1",
			amount:    decimal.Zero,
			errorType: domain.ErrInvalidAmount,
		},
		{
			name:      "negative amount rejected",
			userID:    "user-1",
			accountID: "acc-1",
			amount:    decimal.NewFromInt(-10),
			errorType: domain.ErrInvalidAmount,
		},
		{
			name:      "unknown account",
			userID:    "user-1",
			accountID: "acc-missing",
			amount:    decimal.NewFromInt(10),
			errorType: domain.ErrAccountNotFound,
		},
		{
			name:      "foreign account looks missing",
			userID:    "user-2",
			accountID: "acc-1",
			amount:    decimal.NewFromInt(10),
			errorType: domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, accRepo, txnRepo, _ := newLedgerFixture()
			seedAccount(accRepo, "acc-1", "user-1", "111122223333", 1000)

			result, err := uc.Deposit(context.Background(), usecase.DepositInput{
				UserID:    tt.userID,
				AccountID: tt.accountID,
				Amount:    tt.amount,
			})

			if tt.errorType != nil {
				if !errors.Is(err, tt.errorType) {
					t.Fatalf("expected error %v, got %v", tt.errorType, err)
				}
				if len(txnRepo.All()) != 0 {
					t.Error("no transaction record should exist after a failed deposit")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := decimal.NewFromInt(1500)
			if !result.NewBalance.Equal(want) {
				t.Errorf("expected balance %s, got %s", want, result.NewBalance)
			}
			if !accRepo.Account("acc-1").Balance.Equal(want) {
				t.Errorf("stored balance not updated, got %s", accRepo.Account("acc-1").Balance)
			}

			records := txnRepo.All()
			if len(records) != 1 {
				t.Fatalf("expected exactly one transaction record, got %d", len(records))
			}
			if records[0].TransactionType != domain.TransactionTypeDeposit {
				t.Errorf("expected deposit record, got %s", records[0].TransactionType)
			}
			if records[0].Status != domain.TransactionStatusCompleted {
				t.Errorf("expected completed status, got %s", records[0].Status)
			}
		})
	}
}

func TestLedgerUseCase_Withdraw(t *testing.T) {
	tests := []struct {
		name        string
		amount      decimal.Decimal
		wantBalance decimal.Decimal
		errorType   error
	}{
		{
			name:        "successful withdrawal",
			amount:      decimal.NewFromInt(400),
			wantBalance: decimal.NewFromInt(600),
		},
		{
			name:        "full balance drains to zero",
			amount:      decimal.NewFromInt(1000),
			wantBalance: decimal.Zero,
		},
		{
			name:      "insufficient funds",
			amount:    decimal.NewFromInt(1001),
			errorType: domain.ErrInsufficientFunds,
		},
		{
			name:      "zero amount rejected",
			amount:    decimal.Zero,
			errorType: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, accRepo, txnRepo, _ := newLedgerFixture()
			seedAccount(accRepo, "acc-1", "user-1", "111122223333", 1000)

			result, err := uc.Withdraw(context.Background(), usecase.WithdrawInput{
				UserID:    "user-1",
				AccountID: "acc-1",
				Amount:    tt.amount,
			})

			if tt.errorType != nil {
				if !errors.Is(err, tt.errorType) {
					t.Fatalf("expected error %v, got %v", tt.errorType, err)
				}
				if !accRepo.Account("acc-1").Balance.Equal(decimal.NewFromInt(1000)) {
					t.Error("balance must be untouched after a failed withdrawal")
				}
				if len(txnRepo.All()) != 0 {
					t.Error("no transaction record should exist after a failed withdrawal")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !result.NewBalance.Equal(tt.wantBalance) {
				t.Errorf("expected balance %s, got %s", tt.wantBalance, result.NewBalance)
			}

			records := txnRepo.All()
			if len(records) != 1 {
				t.Fatalf("expected exactly one transaction record, got %d", len(records))
			}
			if records[0].TransactionType != domain.TransactionTypeWithdrawal {
				t.Errorf("expected withdrawal record, got %s", records[0].TransactionType)
			}
		})
	}
}

func TestLedgerUseCase_Transfer(t *testing.T) {
	uc, accRepo, txnRepo, _ := newLedgerFixture()
	seedAccount(accRepo, "acc-1", "user-1", "111122223333", 1000)
	seedAccount(accRepo, "acc-2", "user-2", "444455556666", 200)

	result, err := uc.Transfer(context.Background(), usecase.TransferInput{
		UserID:          "user-1",
		FromAccountID:   "acc-1",
		ToAccountNumber: "444455556666",
		Amount:          decimal.NewFromInt(300),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.NewBalance.Equal(decimal.NewFromInt(700)) {
		t.Errorf("expected sender balance 700, got %s", result.NewBalance)
	}
	if !accRepo.Account("acc-2").Balance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected recipient balance 500, got %s", accRepo.Account("acc-2").Balance)
	}

	// Money is conserved across the pair of accounts.
	total := accRepo.Account("acc-1").Balance.Add(accRepo.Account("acc-2").Balance)
	if !total.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("total balance changed by transfer: %s", total)
	}

	records := txnRepo.All()
	if len(records) != 2 {
		t.Fatalf("expected exactly two transaction records, got %d", len(records))
	}

	out, in := records[0], records[1]
	if out.TransactionType != domain.TransactionTypeTransferOut {
		t.Errorf("expected transfer_out first, got %s", out.TransactionType)
	}
	if out.Description != "Transfer to 444455556666" {
		t.Errorf("unexpected out description %q", out.Description)
	}
	if out.ToAccount != "444455556666" {
		t.Errorf("unexpected out to_account %q", out.ToAccount)
	}

	if in.TransactionType != domain.TransactionTypeTransferIn {
		t.Errorf("expected transfer_in second, got %s", in.TransactionType)
	}
	if in.UserID != "user-2" {
		t.Errorf("incoming leg must belong to the recipient, got %s", in.UserID)
	}
	if in.Description != "Transfer from 111122223333" {
		t.Errorf("unexpected in description %q", in.Description)
	}
}

func TestLedgerUseCase_Transfer_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     usecase.TransferInput
		errorType error
	}{
		{
			name: "missing recipient",
			input: usecase.TransferInput{
				UserID:        "user-1",
				FromAccountID: "acc-1",
				Amount:        decimal.NewFromInt(10),
			},
			errorType: domain.ErrMissingRecipient,
		},
		{
			name: "unknown recipient",
			input: usecase.TransferInput{
				UserID:          "user-1",
				FromAccountID:   "acc-1",
				ToAccountNumber: "999999999999",
				Amount:          decimal.NewFromInt(10),
			},
			errorType: domain.ErrRecipientNotFound,
		},
		{
			name: "sender does not own the source account",
			input: usecase.TransferInput{
				UserID:          "user-2",
				FromAccountID:   "acc-1",
				ToAccountNumber: "444455556666",
				Amount:          decimal.NewFromInt(10),
			},
			errorType: domain.ErrAccountNotFound,
		},
		{
			name: "insufficient funds",
			input: usecase.TransferInput{
				UserID:          "user-1",
				FromAccountID:   "acc-1",
				ToAccountNumber: "444455556666",
				Amount:          decimal.NewFromInt(5000),
			},
			errorType: domain.ErrInsufficientFunds,
		},
		{
			name: "invalid amount",
			input: usecase.TransferInput{
				UserID:          "user-1",
				FromAccountID:   "acc-1",
				ToAccountNumber: "444455556666",
				Amount:          decimal.NewFromInt(-5),
			},
			errorType: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, accRepo, txnRepo, _ := newLedgerFixture()
			seedAccount(accRepo, "acc-1", "user-1", "111122223333", 1000)
			seedAccount(accRepo, "acc-2", "user-2", "444455556666", 200)

			_, err := uc.Transfer(context.Background(), tt.input)
			if !errors.Is(err, tt.errorType) {
				t.Fatalf("expected error %v, got %v", tt.errorType, err)
			}

			// No partial effects.
			if !accRepo.Account("acc-1").Balance.Equal(decimal.NewFromInt(1000)) {
				t.Error("sender balance must be untouched")
			}
			if !accRepo.Account("acc-2").Balance.Equal(decimal.NewFromInt(200)) {
				t.Error("recipient balance must be untouched")
			}
			if len(txnRepo.All()) != 0 {
				t.Error("no transaction records should exist after a failed transfer")
			}
		})
	}
}

func TestLedgerUseCase_Transfer_SameAccount(t *testing.T) {
	uc, accRepo, txnRepo, _ := newLedgerFixture()
	seedAccount(accRepo, "acc-1", "user-1", "111122223333", 1000)

	result, err := uc.Transfer(context.Background(), usecase.TransferInput{
		UserID:          "user-1",
		FromAccountID:   "acc-1",
		ToAccountNumber: "111122223333",
		Amount:          decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A self-transfer nets to zero but still records both legs.
	if !accRepo.Account("acc-1").Balance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("self-transfer must not change the balance, got %s", accRepo.Account("acc-1").Balance)
	}
	if len(txnRepo.All()) != 2 {
		t.Errorf("expected two records for a self-transfer, got %d", len(txnRepo.All()))
	}
	if !result.NewBalance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected final balance 1000, got %s", result.NewBalance)
	}
}

func TestLedgerUseCase_ApproveTransaction(t *testing.T) {
	pending := &domain.Transaction{
		ID:              "txn-1",
		UserID:          "user-1",
		AccountID:       "acc-1",
		TransactionType: domain.TransactionTypeInvestment,
		Amount:          decimal.NewFromInt(100),
		Status:          domain.TransactionStatusPending,
		CreatedAt:       time.Now().UTC(),
	}

	tests := []struct {
		name          string
		transactionID string
		userID        string
		status        domain.TransactionStatus
		errorType     error
	}{
		{
			name:          "successful approval",
			transactionID: "txn-1",
			userID:        "user-1",
			status:        domain.TransactionStatusPending,
		},
		{
			name:          "unknown transaction",
			transactionID: "txn-missing",
			userID:        "user-1",
			status:        domain.TransactionStatusPending,
			errorType:     domain.ErrTransactionNotFound,
		},
		{
			name:          "foreign transaction looks missing",
			transactionID: "txn-1",
			userID:        "user-2",
			status:        domain.TransactionStatusPending,
			errorType:     domain.ErrTransactionNotFound,
		},
		{
			name:          "already completed",
			transactionID: "txn-1",
			userID:        "user-1",
			status:        domain.TransactionStatusCompleted,
			errorType:     domain.ErrInvalidTransactionState,
		},
		{
			name:          "failed transaction cannot be approved",
			transactionID: "txn-1",
			userID:        "user-1",
			status:        domain.TransactionStatusFailed,
			errorType:     domain.ErrInvalidTransactionState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, txnRepo, _ := newLedgerFixture()

			seeded := *pending
			seeded.Status = tt.status
			if err := txnRepo.Create(context.Background(), nil, &seeded); err != nil {
				t.Fatalf("seed failed: %v", err)
			}

			approved, err := uc.ApproveTransaction(context.Background(), tt.transactionID, tt.userID)

			if tt.errorType != nil {
				if !errors.Is(err, tt.errorType) {
					t.Fatalf("expected error %v, got %v", tt.errorType, err)
				}
				stored, getErr := txnRepo.GetByID(context.Background(), "txn-1")
				if getErr != nil {
					t.Fatalf("seeded record vanished: %v", getErr)
				}
				if stored.Status != tt.status {
					t.Errorf("status must be untouched after a failed approval, got %s", stored.Status)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if approved.Status != domain.TransactionStatusCompleted {
				t.Errorf("expected completed status, got %s", approved.Status)
			}

			stored, _ := txnRepo.GetByID(context.Background(), "txn-1")
			if stored.Status != domain.TransactionStatusCompleted {
				t.Errorf("stored status not updated, got %s", stored.Status)
			}
		})
	}
}
