package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/scholia/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertTodo(ctx context.Context, tx db.DBTX, id, title string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO todos (id, title, created_at, updated_at) VALUES (?, ?, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
		id, title)
	return err
}

// readTitle reads through a fresh transaction; the in-memory pool holds a
// single connection.
func readTitle(uow *db.SQLiteUnitOfWork, id string) (string, bool) {
	var title string
	var found bool
	_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := tx.QueryRowContext(ctx, `SELECT title FROM todos WHERE id = ?`, id).Scan(&title); err != nil {
			return nil
		}
		found = true
		return nil
	})
	return title, found
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertTodo(ctx, tx, "k1", "v1")
	})
	require.NoError(t, err)

	title, found := readTitle(uow, "k1")
	assert.True(t, found, "row should exist after commit")
	assert.Equal(t, "v1", title)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertTodo(ctx, tx, "k2", "v2"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")

	_, found := readTitle(uow, "k2")
	assert.False(t, found, "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertTodo(ctx, tx, "k3", "v3")
			panic("boom")
		})
	})

	_, found := readTitle(uow, "k3")
	assert.False(t, found, "row should not exist after panic rollback")
}
