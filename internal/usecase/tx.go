package usecase

import "context"

// Retrier re-runs an operation that failed with a transient store error,
// such as a deadlock or serialization failure. A nil Retrier means every
// failure is final.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// runInTx runs fn inside a store transaction bounded by
// DefaultTransactionTimeout. The transaction commits only when fn returns
// nil. With a retrier the whole transaction is re-run on transient
// failures, so fn must not carry state across attempts.
func runInTx(ctx context.Context, tm TxManager, retrier Retrier, fn func(txCtx context.Context, tx Tx) error) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	attempt := func() error {
		tx, err := tm.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		if err := fn(txCtx, tx); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	}

	if retrier == nil {
		return attempt()
	}

	return retrier.Retry(txCtx, attempt)
}
