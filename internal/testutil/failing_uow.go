package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/scholia/internal/db"
)

// FailOnNthExecUoW runs the real transaction but makes the FailOn-th write
// return Err, so rollback tests can break a multi-row mutation at any point.
//
// Writes are numbered from 1. When Table is set only statements mentioning
// that table are counted. Reads are never counted or failed.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Table  string
	Err    error

	mu     sync.Mutex
	writes int
}

// Writes reports how many counted writes the last transaction attempted,
// including the failed one.
func (u *FailOnNthExecUoW) Writes() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.writes
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	u.mu.Lock()
	u.writes = 0
	u.mu.Unlock()

	if err := fn(ctx, &failingTx{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	uow *FailOnNthExecUoW
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	u := f.uow
	if u.Table == "" || strings.Contains(query, u.Table) {
		u.mu.Lock()
		u.writes++
		n := u.writes
		u.mu.Unlock()
		if n == u.FailOn {
			return nil, u.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
