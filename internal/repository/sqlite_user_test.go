package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/alexanderramin/scholia/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_CreateAndLookup(t *testing.T) {
	repo := NewSQLiteUserRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	u := &domain.User{ID: "u1", Email: "Ada@Example.org", PasswordHash: "hash", CreatedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, repo.Create(ctx, u))

	byEmail, err := repo.GetByEmail(ctx, "ada@example.org")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada@Example.org", byID.Email)

	dup := &domain.User{ID: "u2", Email: "ADA@example.org", PasswordHash: "x", CreatedAt: u.CreatedAt}
	assert.Error(t, repo.Create(ctx, dup), "email is unique regardless of case")

	_, err = repo.GetByEmail(ctx, "nobody@example.org")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByID(ctx, "u9")
	assert.ErrorIs(t, err, ErrNotFound)
}
