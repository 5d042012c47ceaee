package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/crewplan/internal/db"
)

// FailOnNthExecUoW runs fn in a real transaction but returns Err from the
// FailOn-th write (1-based) and rolls back. When Table is set only writes
// whose statement names that table are counted, so a test can fail, say, the
// second change-log insert of a commit no matter how many task writes precede
// it. Reads are never counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	Table  string
	FailOn int
	Err    error

	// Writes is the number of counted writes seen by the last WithinTx.
	Writes int
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthExec{DBTX: tx, uow: u}
	u.Writes = 0
	if err := fn(ctx, wrapped); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	uow *FailOnNthExecUoW
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.Table == "" || strings.Contains(query, f.uow.Table) {
		f.uow.Writes++
		if f.uow.Writes == f.uow.FailOn {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
