package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// DashboardUseCase aggregates a user's overall position. Pure query, no
// mutation: a user with no gold holding sees a nil holding rather than
// having one created.
type DashboardUseCase struct {
	userRepo        UserRepository
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	goldRepo        GoldRepository
}

// NewDashboardUseCase creates a new DashboardUseCase.
func NewDashboardUseCase(
	userRepo UserRepository,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	goldRepo GoldRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		goldRepo:        goldRepo,
	}
}

// Dashboard is the aggregated view returned to the caller.
type Dashboard struct {
	TotalBalance       decimal.Decimal
	Accounts           []*domain.Account
	RecentTransactions []*domain.Transaction
	Gold               *domain.GoldHolding
	User               *domain.User
}

// Get builds the dashboard for a user: total balance across accounts, the
// ten most recent transactions, the gold holding if any, and profile fields.
func (uc *DashboardUseCase) Get(ctx context.Context, userID string) (*Dashboard, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""

	accounts, err := uc.accountRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}

	transactions, err := uc.transactionRepo.ListRecentByUser(ctx, userID, DashboardRecentTransactions)
	if err != nil {
		return nil, err
	}

	gold, err := uc.goldRepo.GetByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrGoldHoldingNotFound) {
			return nil, err
		}
		gold = nil
	}

	return &Dashboard{
		TotalBalance:       total,
		Accounts:           accounts,
		RecentTransactions: transactions,
		Gold:               gold,
		User:               user,
	}, nil
}
