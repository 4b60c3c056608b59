package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/jmoiron/sqlx"
)

// maxTxAttempts bounds how many times a transaction failing with a
// [Retryable] error is run.
const maxTxAttempts = 3

type txCtxKey struct{}

func withTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

func txFromContext(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txCtxKey{}).(*sqlx.Tx)
	return tx, ok && tx != nil
}

type txManager struct {
	db *DB
}

// NewTxManager returns a [TxManager] running transactions on db.
func NewTxManager(db *DB) TxManager {
	return &txManager{db: db}
}

// RunInTx executes fn within a database transaction.
// On success: commits. On error from fn: rolls back and returns the error.
// On panic from fn: rolls back and re-panics.
//
// A RunInTx nested in another joins the outer transaction. The outermost
// call runs fn again when the transaction fails with a retryable error.
func (m *txManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = m.runOnce(ctx, fn)
		if err == nil || !m.retryable(err) || ctx.Err() != nil {
			return err
		}
		log.Warn().Err(err).Int("attempt", attempt).Str("func", "*txManager.RunInTx").Msg("retrying transaction")
	}

	return err
}

func (m *txManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err = fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (m *txManager) retryable(err error) bool {
	if m.db.errorClassificator == nil {
		return false
	}

	// integrity violations are mapped to store errors and never retried
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyExists) || errors.Is(err, ErrConflict) {
		return false
	}

	return m.db.errorClassificator.Classify(err) == Retryable
}
