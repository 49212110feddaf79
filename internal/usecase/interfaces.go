package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, tx Tx, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// ExistsByUsernameOrEmail reports whether a user already holds either
	// unique field.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Tx, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.Account, error)
	// GetByIDsForUpdate locks accounts in sorted id order (deadlock prevention).
	GetByIDsForUpdate(ctx context.Context, tx Tx, ids []string) ([]*domain.Account, error)
	// GetPrimaryForUpdate locks the user's first-created account.
	GetPrimaryForUpdate(ctx context.Context, tx Tx, userID string) (*domain.Account, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Tx, id string, balance decimal.Decimal, updatedAt time.Time) error
}

// TransactionRepository defines data access for transaction records.
type TransactionRepository interface {
	Create(ctx context.Context, tx Tx, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, tx Tx, id string, status domain.TransactionStatus) error
	// ListRecentByUser returns the newest records first, created_at
	// descending with id as tiebreak.
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error)
}

// GoldRepository defines data access for digital gold holdings.
type GoldRepository interface {
	Create(ctx context.Context, tx Tx, holding *domain.GoldHolding) error
	GetByUser(ctx context.Context, userID string) (*domain.GoldHolding, error)
	GetByUserForUpdate(ctx context.Context, tx Tx, userID string) (*domain.GoldHolding, error)
	Update(ctx context.Context, tx Tx, holding *domain.GoldHolding) error
}

// Tx represents a store transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager handles store transaction lifecycle.
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// IDGenerator generates unique entity IDs.
type IDGenerator interface {
	Generate() string
}

// AccountNumberGenerator produces candidate 12-digit account numbers.
// Uniqueness is enforced by the caller, which regenerates on collision.
type AccountNumberGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
