package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/alexanderramin/scholia/internal/llm"
	"github.com/alexanderramin/scholia/internal/planner"
	"github.com/alexanderramin/scholia/internal/repository"
	"github.com/alexanderramin/scholia/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const analysisPlan = `{"phases":[
 {"name":"Analysis","start_date":"2025-04-01","end_date":"2025-04-20",
  "tasks":[{"title":"Clean dataset","deadline":"2025-04-05"},{"title":"Run models"}]},
 {"name":"Writing","start_date":"2025-04-21","end_date":"2025-05-10",
  "tasks":[{"title":"Draft results section"}]}
]}`

func newPlanSvc(t *testing.T, fake *testutil.FakeLLMClient) (*planService, TicketService) {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	tickets := newTicketSvc(t, database, uow)
	svc := NewPlanService(repository.NewSQLiteTicketRepo(database), planner.New(fake), uow).(*planService)
	svc.now = fixedClock
	svc.today = fixedClock
	return svc, tickets
}

func TestPlanService_AppendsAfterExistingPhases(t *testing.T) {
	fake := testutil.NewFakeLLMClient(analysisPlan)
	obs := &recordingObserver{}
	svc, tickets := newPlanSvc(t, fake)
	svc.observer = obs
	ticket := seedScenarioTicket(t, tickets)
	ctx := context.Background()

	res, err := svc.Generate(ctx, ticket.ID, "mixed methods")
	require.NoError(t, err)
	assert.Equal(t, 2, res.PhasesAdded)
	assert.Equal(t, 3, res.TasksAdded)

	stored, err := tickets.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, stored.Phases, 4)
	assert.Equal(t, 3, stored.Phases[2].ID)
	assert.Equal(t, "Analysis", stored.Phases[2].Name)
	assert.Equal(t, 4, stored.Phases[3].ID)
	require.Len(t, stored.Tasks, 5)

	var aiTasks []domain.Task
	for _, task := range stored.Tasks {
		if task.Source == domain.SourceAIPlan {
			aiTasks = append(aiTasks, task)
		}
	}
	require.Len(t, aiTasks, 3)
	assert.Equal(t, 3, aiTasks[0].PhaseID)
	require.NotNil(t, aiTasks[0].Deadline)
	assert.Equal(t, testutil.Date(2025, 4, 5), *aiTasks[0].Deadline)
	assert.Equal(t, 0, stored.Progress)
	assert.Equal(t, domain.StatusPlanned, stored.Status)

	require.Len(t, fake.Requests, 1)
	assert.Contains(t, fake.Requests[0].UserPrompt, "- Literature Review")
	assert.Contains(t, fake.Requests[0].UserPrompt, "Brief: mixed methods")

	ev := obs.last()
	assert.Equal(t, "generate-plan", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 2, ev.Fields["phases_added"])
}

func TestPlanService_InvalidPlanWritesNothing(t *testing.T) {
	fake := testutil.NewFakeLLMClient(`{"phases":[]}`)
	svc, tickets := newPlanSvc(t, fake)
	ticket := seedScenarioTicket(t, tickets)
	ctx := context.Background()

	_, err := svc.Generate(ctx, ticket.ID, "")
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)

	stored, err := tickets.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Phases, 2)
	assert.Len(t, stored.Tasks, 2)
}

func TestPlanService_Errors(t *testing.T) {
	fake := testutil.NewFakeLLMClient(analysisPlan)
	svc, _ := newPlanSvc(t, fake)

	_, err := svc.Generate(context.Background(), "missing", "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Zero(t, fake.Calls())

	fake.Err = llm.ErrUnavailable
	svc2, tickets := newPlanSvc(t, fake)
	ticket := seedScenarioTicket(t, tickets)
	_, err = svc2.Generate(context.Background(), ticket.ID, "")
	assert.ErrorIs(t, err, llm.ErrUnavailable)
}
