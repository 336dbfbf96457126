package progress

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskIDs(tasks []domain.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func TestRelevantTasks_CurrentPhaseOnly(t *testing.T) {
	tk := domain.Ticket{
		Phases: []domain.Phase{{ID: 2}, {ID: 1, Completed: true}},
		Tasks: []domain.Task{
			{ID: "old", PhaseID: 1, Completed: true},
			{ID: "c1", PhaseID: 2},
			{ID: "c2", PhaseID: 2, Completed: true},
			{ID: "c3", PhaseID: 2},
		},
	}
	assert.Equal(t, []string{"c1", "c3"}, taskIDs(RelevantTasks(tk)))
}

func TestRelevantTasks_CapsAtFive(t *testing.T) {
	tk := domain.Ticket{Phases: []domain.Phase{{ID: 1}}}
	for i := 0; i < 7; i++ {
		tk.Tasks = append(tk.Tasks, domain.Task{ID: fmt.Sprintf("t%d", i), PhaseID: 1})
	}
	got := RelevantTasks(tk)
	require.Len(t, got, MaxRelevant)
	assert.Equal(t, "t0", got[0].ID)
	assert.Equal(t, "t4", got[4].ID)
}

func TestRelevantTasks_FallsBackToNextIncompletePhase(t *testing.T) {
	tk := domain.Ticket{
		Phases: []domain.Phase{{ID: 1}, {ID: 2, Completed: true}, {ID: 3}},
		Tasks: []domain.Task{
			{ID: "done", PhaseID: 2, Completed: true},
			{ID: "n1", PhaseID: 3},
			{ID: "orphan", PhaseID: 9},
		},
	}
	assert.Equal(t, []string{"n1"}, taskIDs(RelevantTasks(tk)))
}

func TestRelevantTasks_FallbackIsSingleLevel(t *testing.T) {
	tk := domain.Ticket{
		Phases: []domain.Phase{{ID: 1}, {ID: 2}, {ID: 3}},
		Tasks: []domain.Task{
			{ID: "p3", PhaseID: 3},
			{ID: "orphan", PhaseID: 9},
		},
	}
	// Phase 2 is empty too, so the search widens to the whole ticket.
	assert.Equal(t, []string{"p3", "orphan"}, taskIDs(RelevantTasks(tk)))
}

func TestRelevantTasks_AllPhasesComplete(t *testing.T) {
	tk := domain.Ticket{
		Phases: []domain.Phase{{ID: 1, Completed: true}},
		Tasks: []domain.Task{
			{ID: "a", PhaseID: 1},
			{ID: "b", PhaseID: 1, Completed: true},
			{ID: "c", PhaseID: 4},
		},
	}
	assert.Equal(t, []string{"a", "c"}, taskIDs(RelevantTasks(tk)))
}

func TestRelevantTasks_NeverReturnsCompleted(t *testing.T) {
	tk := domain.Ticket{Tasks: []domain.Task{{ID: "a", Completed: true}}}
	assert.Empty(t, RelevantTasks(tk))
}

func TestCurrentPhase(t *testing.T) {
	tk := domain.Ticket{Phases: []domain.Phase{{ID: 4}, {ID: 2}, {ID: 1, Completed: true}}}
	p, ok := CurrentPhase(tk)
	require.True(t, ok)
	assert.Equal(t, 2, p.ID)

	_, ok = CurrentPhase(domain.Ticket{Phases: []domain.Phase{{ID: 1, Completed: true}}})
	assert.False(t, ok)
}
