package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/alexanderramin/scholia/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseRepo_CreateAllocatesIDsPerTicket(t *testing.T) {
	db := testutil.NewTestDB(t)
	tickets := NewSQLiteTicketRepo(db)
	repo := NewSQLitePhaseRepo(db)
	ctx := context.Background()

	a := testutil.NewTestTicket("A")
	b := testutil.NewTestTicket("B")
	require.NoError(t, tickets.Create(ctx, a))
	require.NoError(t, tickets.Create(ctx, b))

	p1 := &domain.Phase{Name: "Literature Review"}
	p2 := &domain.Phase{Name: "Data Collection"}
	require.NoError(t, repo.Create(ctx, a.ID, p1))
	require.NoError(t, repo.Create(ctx, a.ID, p2))
	assert.Equal(t, 1, p1.ID)
	assert.Equal(t, 2, p2.ID)

	other := &domain.Phase{Name: "Other"}
	require.NoError(t, repo.Create(ctx, b.ID, other))
	assert.Equal(t, 1, other.ID, "ids are scoped to the ticket")

	next, err := repo.NextID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, next)
}

func TestPhaseRepo_ExplicitIDAndDates(t *testing.T) {
	db := testutil.NewTestDB(t)
	tickets := NewSQLiteTicketRepo(db)
	repo := NewSQLitePhaseRepo(db)
	ctx := context.Background()

	ticket := testutil.NewTestTicket("T")
	require.NoError(t, tickets.Create(ctx, ticket))

	start := testutil.Date(2025, 3, 1)
	p := &domain.Phase{ID: 7, Name: "Analysis", StartDate: start, EndDate: start.AddDate(0, 0, 10)}
	require.NoError(t, repo.Create(ctx, ticket.ID, p))
	require.NoError(t, repo.Create(ctx, ticket.ID, &domain.Phase{ID: 3, Name: "Undated"}))

	list, err := repo.ListByTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 3, list[0].ID)
	assert.True(t, list[0].StartDate.IsZero())
	assert.Equal(t, 7, list[1].ID)
	assert.True(t, start.Equal(list[1].StartDate))
	assert.True(t, start.AddDate(0, 0, 10).Equal(list[1].EndDate))

	assert.Error(t, repo.Create(ctx, ticket.ID, &domain.Phase{ID: 7, Name: "dup"}))
}

func TestPhaseRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	tickets := NewSQLiteTicketRepo(db)
	repo := NewSQLitePhaseRepo(db)
	ctx := context.Background()

	ticket := testutil.NewTestTicket("T")
	require.NoError(t, tickets.Create(ctx, ticket))
	p := &domain.Phase{Name: "Writing"}
	require.NoError(t, repo.Create(ctx, ticket.ID, p))

	p.Completed = true
	p.Name = "Report Writing"
	require.NoError(t, repo.Update(ctx, ticket.ID, *p))

	list, err := repo.ListByTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Completed)
	assert.Equal(t, "Report Writing", list[0].Name)

	assert.ErrorIs(t, repo.Update(ctx, ticket.ID, domain.Phase{ID: 99}), ErrNotFound)
	require.NoError(t, repo.Delete(ctx, ticket.ID, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, ticket.ID, p.ID), ErrNotFound)
}

func TestPhaseRepo_CreateRequiresTicket(t *testing.T) {
	repo := NewSQLitePhaseRepo(testutil.NewTestDB(t))

	err := repo.Create(context.Background(), "missing", &domain.Phase{Name: "orphan"})
	assert.Error(t, err)
}
