package usecase

import (
	"context"

	"github.com/iho/gobank/internal/domain"
)

// AccountUseCase handles read-side account operations. Balance mutations
// live in LedgerUseCase.
type AccountUseCase struct {
	accountRepo AccountRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository) *AccountUseCase {
	return &AccountUseCase{accountRepo: accountRepo}
}

// ListAccounts lists the caller's accounts.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, userID string) ([]*domain.Account, error) {
	return uc.accountRepo.ListByUser(ctx, userID)
}

// GetAccount retrieves one of the caller's accounts. An account owned by
// someone else is reported as missing.
func (uc *AccountUseCase) GetAccount(ctx context.Context, accountID, userID string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if !account.OwnedBy(userID) {
		return nil, domain.ErrAccountNotFound
	}

	return account, nil
}
