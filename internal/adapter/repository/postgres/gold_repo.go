package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

const goldColumns = `id, user_id, grams, current_value, last_updated`

// GoldRepository implements usecase.GoldRepository.
type GoldRepository struct {
	pool *pgxpool.Pool
}

// NewGoldRepository creates a new GoldRepository.
func NewGoldRepository(pool *pgxpool.Pool) *GoldRepository {
	return &GoldRepository{pool: pool}
}

// Create inserts a holding inside the given transaction. The user_id unique
// constraint guarantees at most one holding per user.
func (r *GoldRepository) Create(ctx context.Context, tx usecase.Tx, holding *domain.GoldHolding) error {
	query := `
		INSERT INTO gold_holdings (` + goldColumns + `)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := pgxTx(tx).Exec(ctx, query,
		holding.ID,
		holding.UserID,
		decimalToNumeric(holding.Grams),
		decimalToNumeric(holding.CurrentValue),
		timeToPgTimestamptz(holding.LastUpdated),
	)

	return err
}

// GetByUser retrieves a user's holding.
func (r *GoldRepository) GetByUser(ctx context.Context, userID string) (*domain.GoldHolding, error) {
	query := `SELECT ` + goldColumns + ` FROM gold_holdings WHERE user_id = $1`

	return scanGoldHolding(r.pool.QueryRow(ctx, query, userID))
}

// GetByUserForUpdate retrieves a user's holding with a FOR UPDATE lock.
func (r *GoldRepository) GetByUserForUpdate(ctx context.Context, tx usecase.Tx, userID string) (*domain.GoldHolding, error) {
	query := `SELECT ` + goldColumns + ` FROM gold_holdings WHERE user_id = $1 FOR UPDATE`

	return scanGoldHolding(pgxTx(tx).QueryRow(ctx, query, userID))
}

// Update writes a holding's cumulative state.
func (r *GoldRepository) Update(ctx context.Context, tx usecase.Tx, holding *domain.GoldHolding) error {
	query := `
		UPDATE gold_holdings
		SET grams = $2, current_value = $3, last_updated = $4
		WHERE id = $1
	`

	_, err := pgxTx(tx).Exec(ctx, query,
		holding.ID,
		decimalToNumeric(holding.Grams),
		decimalToNumeric(holding.CurrentValue),
		timeToPgTimestamptz(holding.LastUpdated),
	)

	return err
}

func scanGoldHolding(row rowScanner) (*domain.GoldHolding, error) {
	var (
		holding     domain.GoldHolding
		grams       pgtype.Numeric
		value       pgtype.Numeric
		lastUpdated pgtype.Timestamptz
	)

	err := row.Scan(
		&holding.ID,
		&holding.UserID,
		&grams,
		&value,
		&lastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoldHoldingNotFound
		}

		return nil, err
	}

	holding.Grams = numericToDecimal(grams)
	holding.CurrentValue = numericToDecimal(value)
	holding.LastUpdated = lastUpdated.Time

	return &holding, nil
}
