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

const transactionColumns = `id, user_id, account_id, transaction_type, amount, description, to_account, status, created_at`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a transaction record inside the given transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Tx, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := pgxTx(tx).Exec(ctx, query,
		txn.ID,
		txn.UserID,
		txn.AccountID,
		string(txn.TransactionType),
		decimalToNumeric(txn.Amount),
		txn.Description,
		txn.ToAccount,
		string(txn.Status),
		timeToPgTimestamptz(txn.CreatedAt),
	)

	return err
}

// GetByID retrieves a transaction record by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	return scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a transaction record with a FOR UPDATE lock.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`

	return scanTransaction(pgxTx(tx).QueryRow(ctx, query, id))
}

// UpdateStatus moves a transaction record to a new status.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Tx, id string, status domain.TransactionStatus) error {
	query := `UPDATE transactions SET status = $2 WHERE id = $1`

	_, err := pgxTx(tx).Exec(ctx, query, id, string(status))

	return err
}

// ListRecentByUser returns the user's newest records first; ties on
// created_at break on id, which is time-ordered for ULIDs.
func (r *TransactionRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransactionRow(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	txn, err := scanTransactionRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return txn, nil
}

func scanTransactionRow(row rowScanner) (*domain.Transaction, error) {
	var (
		txn         domain.Transaction
		txnType     string
		amount      pgtype.Numeric
		description pgtype.Text
		toAccount   pgtype.Text
		status      string
		createdAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&txn.ID,
		&txn.UserID,
		&txn.AccountID,
		&txnType,
		&amount,
		&description,
		&toAccount,
		&status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	txn.TransactionType = domain.TransactionType(txnType)
	txn.Amount = numericToDecimal(amount)
	txn.Description = description.String
	txn.ToAccount = toAccount.String
	txn.Status = domain.TransactionStatus(status)
	txn.CreatedAt = createdAt.Time

	return &txn, nil
}
