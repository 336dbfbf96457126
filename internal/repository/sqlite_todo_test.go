package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/scholia/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoRepo_CreateAppendsPosition(t *testing.T) {
	repo := NewSQLiteTodoRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	a := testutil.NewTestTodo("email advisor")
	b := testutil.NewTestTodo("book room")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	assert.Equal(t, 1, a.Position)
	assert.Equal(t, 2, b.Position)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "email advisor", list[0].Title)
}

func TestTodoRepo_UpdateDeleteAndGet(t *testing.T) {
	repo := NewSQLiteTodoRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	todo := testutil.NewTestTodo("print poster")
	require.NoError(t, repo.Create(ctx, todo))

	todo.Done = true
	require.NoError(t, repo.Update(ctx, todo))

	fetched, err := repo.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Done)

	require.NoError(t, repo.Delete(ctx, todo.ID))
	_, err = repo.GetByID(ctx, todo.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, todo.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, todo), ErrNotFound)
}

func TestTodoRepo_Reorder(t *testing.T) {
	repo := NewSQLiteTodoRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	a, b, c := testutil.NewTestTodo("a"), testutil.NewTestTodo("b"), testutil.NewTestTodo("c")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Create(ctx, c))

	require.NoError(t, repo.Reorder(ctx, []string{c.ID, a.ID, b.ID}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{list[0].Title, list[1].Title, list[2].Title})

	assert.ErrorIs(t, repo.Reorder(ctx, []string{"missing"}), ErrNotFound)
}
