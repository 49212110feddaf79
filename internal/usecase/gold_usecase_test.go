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

func newGoldFixture(pricePerGram int64) (*usecase.GoldUseCase, *mocks.MockAccountRepository, *mocks.MockGoldRepository, *mocks.MockTransactionRepository) {
	accRepo := mocks.NewMockAccountRepository()
	goldRepo := mocks.NewMockGoldRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	txMgr := mocks.NewMockTxManager()
	idGen := mocks.NewMockIDGenerator()

	uc := usecase.NewGoldUseCase(txMgr, nil, accRepo, goldRepo, txnRepo, idGen, decimal.NewFromInt(pricePerGram), nil)

	return uc, accRepo, goldRepo, txnRepo
}

func TestGoldUseCase_Buy(t *testing.T) {
	uc, accRepo, goldRepo, txnRepo := newGoldFixture(5000)
	seedAccount(accRepo, "acc-1", "user-1", "111122223333", 10000)

	result, err := uc.Buy(context.Background(), "user-1", decimal.NewFromInt(2500))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2500 at 5000 per gram is half a gram.
	if !result.GramsBought.Equal(decimal.NewFromFloat(0.5)) {
		t.Errorf("expected 0.5 grams, got %s", result.GramsBought)
	}
	if !result.NewBalance.Equal(decimal.NewFromInt(7500)) {
		t.Errorf("expected balance 7500, got %s", result.NewBalance)
	}
	if !result.TotalGrams.Equal(decimal.NewFromFloat(0.5)) {
		t.Errorf("expected total 0.5 grams, got %s", result.TotalGrams)
	}
	if result.Status != usecase.PendingApprovalStatus {
		t.Errorf("expected pending_approval status, got %q", result.Status)
	}

	if !accRepo.Account("acc-1").Balance.Equal(decimal.NewFromInt(7500)) {
		t.Errorf("stored balance not debited, got %s", accRepo.Account("acc-1").Balance)
	}

	holding, err := goldRepo.GetByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("holding not created: %v", err)
	}
	if !holding.CurrentValue.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("expected holding value 2500, got %s", holding.CurrentValue)
	}

	records := txnRepo.All()
	if len(records) != 1 {
		t.Fatalf("expected one transaction record, got %d", len(records))
	}
	if records[0].TransactionType != domain.TransactionTypeInvestment {
		t.Errorf("expected investment record, got %s", records[0].TransactionType)
	}
	if records[0].Status != domain.TransactionStatusPending {
		t.Errorf("purchase record must stay pending, got %s", records[0].Status)
	}
	if records[0].Description != "Bought 0.5000g Digital Gold" {
		t.Errorf("unexpected description %q", records[0].Description)
	}
	if records[0].ID != result.TransactionID {
		t.Errorf("result transaction id mismatch: %s vs %s", records[0].ID, result.TransactionID)
	}
}

func TestGoldUseCase_Buy_AccumulatesHolding(t *testing.T) {
	uc, accRepo, goldRepo, _ := newGoldFixture(5000)
	seedAccount(accRepo, "acc-1", "user-1", "111122223333", 10000)

	if _, err := uc.Buy(context.Background(), "user-1", decimal.NewFromInt(2500)); err != nil {
		t.Fatalf("first purchase failed: %v", err)
	}

	result, err := uc.Buy(context.Background(), "user-1", decimal.NewFromInt(5000))
	if err != nil {
		t.Fatalf("second purchase failed: %v", err)
	}

	if !result.TotalGrams.Equal(decimal.NewFromFloat(1.5)) {
		t.Errorf("expected total 1.5 grams, got %s", result.TotalGrams)
	}

	holding, _ := goldRepo.GetByUser(context.Background(), "user-1")
	if !holding.CurrentValue.Equal(decimal.NewFromInt(7500)) {
		t.Errorf("expected holding value 7500, got %s", holding.CurrentValue)
	}
}

func TestGoldUseCase_Buy_Errors(t *testing.T) {
	tests := []struct {
		name      string
		userID    string
		amount    decimal.Decimal
		errorType error
	}{
		{
			name:      "insufficient funds",
			userID:    "user-1",
			amount:    decimal.NewFromInt(20000),
			errorType: domain.ErrInsufficientFunds,
		},
		{
			name:      "zero amount",
			userID:    "user-1",
			amount:    decimal.Zero,
			errorType: domain.ErrInvalidAmount,
		},
		{
			name:      "no account",
			userID:    "user-nobody",
			amount:    decimal.NewFromInt(100),
			errorType: domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, accRepo, goldRepo, txnRepo := newGoldFixture(5000)
			seedAccount(accRepo, "acc-1", "user-1", "111122223333", 10000)

			_, err := uc.Buy(context.Background(), tt.userID, tt.amount)
			if !errors.Is(err, tt.errorType) {
				t.Fatalf("expected error %v, got %v", tt.errorType, err)
			}

			// No partial effects.
			if !accRepo.Account("acc-1").Balance.Equal(decimal.NewFromInt(10000)) {
				t.Error("balance must be untouched after a failed purchase")
			}
			if _, err := goldRepo.GetByUser(context.Background(), "user-1"); !errors.Is(err, domain.ErrGoldHoldingNotFound) {
				t.Error("no holding should exist after a failed purchase")
			}
			if len(txnRepo.All()) != 0 {
				t.Error("no transaction records should exist after a failed purchase")
			}
		})
	}
}

func TestGoldUseCase_Buy_DebitsPrimaryAccount(t *testing.T) {
	uc, accRepo, _, _ := newGoldFixture(5000)

	old := time.Now().UTC().Add(-time.Hour)
	accRepo.Seed(&domain.Account{
		ID:            "acc-old",
		UserID:        "user-1",
		AccountNumber: "111122223333",
		AccountType:   domain.AccountTypeSavings,
		Balance:       decimal.NewFromInt(10000),
		Currency:      domain.DefaultCurrency,
		CreatedAt:     old,
		UpdatedAt:     old,
	})
	seedAccount(accRepo, "acc-new", "user-1", "444455556666", 10000)

	if _, err := uc.Buy(context.Background(), "user-1", decimal.NewFromInt(1000)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The oldest account is the primary one.
	if !accRepo.Account("acc-old").Balance.Equal(decimal.NewFromInt(9000)) {
		t.Errorf("primary account not debited, got %s", accRepo.Account("acc-old").Balance)
	}
	if !accRepo.Account("acc-new").Balance.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("secondary account must be untouched, got %s", accRepo.Account("acc-new").Balance)
	}
}

func TestGoldUseCase_GetHoldings(t *testing.T) {
	t.Run("existing holding returned", func(t *testing.T) {
		uc, _, goldRepo, _ := newGoldFixture(5000)

		seeded := &domain.GoldHolding{
			ID:           "gold-1",
			UserID:       "user-1",
			Grams:        decimal.NewFromInt(2),
			CurrentValue: decimal.NewFromInt(10000),
			LastUpdated:  time.Now().UTC(),
		}
		if err := goldRepo.Create(context.Background(), nil, seeded); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		holding, err := uc.GetHoldings(context.Background(), "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !holding.Grams.Equal(decimal.NewFromInt(2)) {
			t.Errorf("expected 2 grams, got %s", holding.Grams)
		}
	})

	t.Run("first access creates an empty holding", func(t *testing.T) {
		uc, _, goldRepo, _ := newGoldFixture(5000)

		holding, err := uc.GetHoldings(context.Background(), "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !holding.Grams.IsZero() || !holding.CurrentValue.IsZero() {
			t.Errorf("expected zero holding, got %s grams / %s value", holding.Grams, holding.CurrentValue)
		}

		if _, err := goldRepo.GetByUser(context.Background(), "user-1"); err != nil {
			t.Errorf("holding should be persisted on first access: %v", err)
		}
	})
}
