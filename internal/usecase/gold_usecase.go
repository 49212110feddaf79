package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/metrics"
)

// GoldUseCase handles the digital gold investment product. A purchase debits
// the user's primary account and grows the holding immediately, but the
// transaction record stays pending until the user approves it: the
// deliberate "conscious pause" before an investment is finalized.
type GoldUseCase struct {
	txManager       TxManager
	retrier         Retrier
	accountRepo     AccountRepository
	goldRepo        GoldRepository
	transactionRepo TransactionRepository
	idGen           IDGenerator
	pricePerGram    decimal.Decimal
	metrics         *metrics.Metrics
}

// NewGoldUseCase creates a new GoldUseCase. pricePerGram is the fixed
// purchase price in account currency units. retrier may be nil.
func NewGoldUseCase(
	txManager TxManager,
	retrier Retrier,
	accountRepo AccountRepository,
	goldRepo GoldRepository,
	transactionRepo TransactionRepository,
	idGen IDGenerator,
	pricePerGram decimal.Decimal,
	metrics *metrics.Metrics,
) *GoldUseCase {
	return &GoldUseCase{
		txManager:       txManager,
		retrier:         retrier,
		accountRepo:     accountRepo,
		goldRepo:        goldRepo,
		transactionRepo: transactionRepo,
		idGen:           idGen,
		pricePerGram:    pricePerGram,
		metrics:         metrics,
	}
}

// BuyGoldResult reports the outcome of an initiated purchase. Status is
// always "pending_approval": the transaction record awaits a separate
// approval step.
type BuyGoldResult struct {
	GramsBought   decimal.Decimal
	NewBalance    decimal.Decimal
	TotalGrams    decimal.Decimal
	TransactionID string
	Status        string
}

// PendingApprovalStatus marks an initiated purchase awaiting approval.
const PendingApprovalStatus = "pending_approval"

// Buy purchases digital gold worth amount from the user's primary account.
// The account debit, the holding upsert and the pending transaction record
// commit together or not at all.
func (uc *GoldUseCase) Buy(ctx context.Context, userID string, amount decimal.Decimal) (*BuyGoldResult, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	var result *BuyGoldResult

	err := runInTx(ctx, uc.txManager, uc.retrier, func(txCtx context.Context, tx Tx) error {
		account, err := uc.accountRepo.GetPrimaryForUpdate(txCtx, tx, userID)
		if err != nil {
			return err
		}

		if err := account.ValidateWithdrawal(amount); err != nil {
			return err
		}

		grams := amount.Div(uc.pricePerGram)
		now := time.Now().UTC()

		newBalance := account.ApplyDebit(amount)
		if err := uc.accountRepo.UpdateBalance(txCtx, tx, account.ID, newBalance, now); err != nil {
			return err
		}

		holding, err := uc.upsertHolding(txCtx, tx, userID, grams, amount, now)
		if err != nil {
			return err
		}

		txn := &domain.Transaction{
			ID:              uc.idGen.Generate(),
			UserID:          userID,
			AccountID:       account.ID,
			TransactionType: domain.TransactionTypeInvestment,
			Amount:          amount,
			Description:     fmt.Sprintf("Bought %sg Digital Gold", grams.StringFixed(4)),
			Status:          domain.TransactionStatusPending,
			CreatedAt:       now,
		}

		if err := uc.transactionRepo.Create(txCtx, tx, txn); err != nil {
			return err
		}

		result = &BuyGoldResult{
			GramsBought:   grams,
			NewBalance:    newBalance,
			TotalGrams:    holding.Grams,
			TransactionID: txn.ID,
			Status:        PendingApprovalStatus,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.GoldPurchasesTotal.Inc()
	}

	return result, nil
}

// GetHoldings returns the user's gold holding, creating an empty one on
// first access.
func (uc *GoldUseCase) GetHoldings(ctx context.Context, userID string) (*domain.GoldHolding, error) {
	holding, err := uc.goldRepo.GetByUser(ctx, userID)
	if err == nil {
		return holding, nil
	}

	if !errors.Is(err, domain.ErrGoldHoldingNotFound) {
		return nil, err
	}

	err = runInTx(ctx, uc.txManager, uc.retrier, func(txCtx context.Context, tx Tx) error {
		holding = &domain.GoldHolding{
			ID:           uc.idGen.Generate(),
			UserID:       userID,
			Grams:        decimal.Zero,
			CurrentValue: decimal.Zero,
			LastUpdated:  time.Now().UTC(),
		}

		return uc.goldRepo.Create(txCtx, tx, holding)
	})
	if err != nil {
		return nil, err
	}

	return holding, nil
}

func (uc *GoldUseCase) upsertHolding(ctx context.Context, tx Tx, userID string, grams, amount decimal.Decimal, now time.Time) (*domain.GoldHolding, error) {
	holding, err := uc.goldRepo.GetByUserForUpdate(ctx, tx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrGoldHoldingNotFound) {
			return nil, err
		}

		holding = &domain.GoldHolding{
			ID:           uc.idGen.Generate(),
			UserID:       userID,
			Grams:        grams,
			CurrentValue: amount,
			LastUpdated:  now,
		}

		if err := uc.goldRepo.Create(ctx, tx, holding); err != nil {
			return nil, err
		}

		return holding, nil
	}

	holding.ApplyPurchase(grams, amount, now)

	if err := uc.goldRepo.Update(ctx, tx, holding); err != nil {
		return nil, err
	}

	return holding, nil
}
