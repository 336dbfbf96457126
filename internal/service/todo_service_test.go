package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/alexanderramin/scholia/internal/planner"
	"github.com/alexanderramin/scholia/internal/repository"
	"github.com/alexanderramin/scholia/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTodoSvc(t *testing.T, fake *testutil.FakeLLMClient) *todoService {
	t.Helper()
	database := testutil.NewTestDB(t)
	svc := NewTodoService(repository.NewSQLiteTodoRepo(database), planner.New(fake), testutil.NewTestUoW(database)).(*todoService)
	svc.now = fixedClock
	return svc
}

func todoTitles(todos []*domain.Todo) []string {
	out := make([]string, len(todos))
	for i, td := range todos {
		out[i] = td.Title
	}
	return out
}

func TestTodoService_CRUD(t *testing.T) {
	svc := newTodoSvc(t, testutil.NewFakeLLMClient())
	ctx := context.Background()

	_, err := svc.Create(ctx, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	a, err := svc.Create(ctx, " Email advisor ")
	require.NoError(t, err)
	assert.Equal(t, "Email advisor", a.Title)
	b, err := svc.Create(ctx, "Book lab slot")
	require.NoError(t, err)

	done, err := svc.Complete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, done.Done)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Email advisor", "Book lab slot"}, todoTitles(list))
	assert.True(t, list[0].Done)

	require.NoError(t, svc.Delete(ctx, b.ID))
	assert.ErrorIs(t, svc.Delete(ctx, b.ID), repository.ErrNotFound)
	_, err = svc.Complete(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTodoService_Prioritize(t *testing.T) {
	fake := testutil.NewFakeLLMClient()
	svc := newTodoSvc(t, fake)
	obs := &recordingObserver{}
	svc.observer = obs
	ctx := context.Background()

	a, _ := svc.Create(ctx, "a")
	b, _ := svc.Create(ctx, "b")
	c, _ := svc.Create(ctx, "c")
	d, _ := svc.Create(ctx, "d")
	_, err := svc.Complete(ctx, d.ID)
	require.NoError(t, err)

	fake.Responses = []string{fmt.Sprintf(`{"order":[%q,%q],"rationale":"deadlines"}`, c.ID, a.ID)}
	list, err := svc.Prioritize(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b", "d"}, todoTitles(list))

	require.Len(t, fake.Requests, 1)
	assert.NotContains(t, fake.Requests[0].UserPrompt, d.ID)
	assert.Contains(t, fake.Requests[0].UserPrompt, b.ID)
	assert.Equal(t, "prioritize-todos", obs.last().Name)

	stored, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b", "d"}, todoTitles(stored))
}

func TestTodoService_PrioritizeRejectsUnknownIDs(t *testing.T) {
	fake := testutil.NewFakeLLMClient(`{"order":["not-a-todo"]}`)
	svc := newTodoSvc(t, fake)
	ctx := context.Background()

	_, _ = svc.Create(ctx, "a")
	_, _ = svc.Create(ctx, "b")

	_, err := svc.Prioritize(ctx)
	assert.ErrorIs(t, err, planner.ErrUnknownTodo)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, todoTitles(list))
}

func TestTodoService_PrioritizeEmptyListSkipsModel(t *testing.T) {
	fake := testutil.NewFakeLLMClient()
	svc := newTodoSvc(t, fake)

	list, err := svc.Prioritize(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, fake.Calls())
}
