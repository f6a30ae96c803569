package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

// TxRunner runs multi-statement sequences as one unit.
type TxRunner struct{ db *sqlx.DB }

func NewTxRunner(db *sqlx.DB) *TxRunner { return &TxRunner{db: db} }

// WithTx commits when fn returns nil and rolls back otherwise, including
// when fn panics. Failures are reported wrapped in domain.ErrTransaction,
// or domain.ErrConnectivity when the database could not be reached.
func (r *TxRunner) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return txErr("begin", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return txErr("rolled back", err)
	}
	if err = tx.Commit(); err != nil {
		return txErr("commit", err)
	}
	return nil
}

func txErr(stage string, err error) error {
	err = storageErr(err)
	if errors.Is(err, domain.ErrConnectivity) {
		return fmt.Errorf("%s: %w", stage, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrTransaction, stage, err)
}
