package main

import (
	"context"
	"database/sql"
	"time"

	dsstore "sourcing/internal/datasourcing/store"
	"sourcing/internal/platform/postgres"
	requestservice "sourcing/internal/request/service"
	requeststore "sourcing/internal/request/store"
	dErrors "sourcing/pkg/domain-errors"
)

const defaultRequestTxTimeout = 5 * time.Second

// requestPostgresTx runs request and data sourcing mutations in one
// SERIALIZABLE transaction. A transaction that loses a race is reported as a
// conflict; callers retry on their side.
type requestPostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newRequestPostgresTx(db *sql.DB, timeout time.Duration) *requestPostgresTx {
	return &requestPostgresTx{db: db, timeout: timeout}
}

func (t *requestPostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context, stores requestservice.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultRequestTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeDependency, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stores := requestservice.Stores{
		Requests:  requeststore.NewPostgresTx(tx),
		Sourcings: dsstore.NewPostgresTx(tx),
	}
	if err := fn(ctx, stores); err != nil {
		if postgres.IsSerializationFailure(err) {
			return dErrors.Wrap(err, dErrors.CodeConflict, "concurrent update, retry the request")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if postgres.IsSerializationFailure(err) {
			return dErrors.Wrap(err, dErrors.CodeConflict, "concurrent update, retry the request")
		}
		return dErrors.Wrap(err, dErrors.CodeDependency, "failed to commit transaction")
	}
	return nil
}
