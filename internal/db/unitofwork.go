package db

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is what repositories run queries against: the pool for plain reads,
// or the transaction handed out by WithinTx for writes.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// UnitOfWork runs fn in one transaction. fn's error rolls everything back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork runs write transactions one at a time.
//
// A schedule commit reads the stored tasks, diffs them and writes the result.
// Two such transactions interleaving on a WAL database would both read the
// same snapshot and the second writer would fail with SQLITE_BUSY when it
// tries to upgrade its lock. Holding the write slot for the whole transaction
// makes the second commit wait and then diff against the first one's output.
// Readers outside WithinTx are not blocked.
type SQLiteUnitOfWork struct {
	db    *sql.DB
	write chan struct{}
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db, write: make(chan struct{}, 1)}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	select {
	case u.write <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("waiting for write transaction: %w", ctx.Err())
	}
	defer func() { <-u.write }()

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
