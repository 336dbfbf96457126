package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestClone_IsDeep(t *testing.T) {
	due := testDay
	orig := Ticket{
		ID:       "t1",
		Deadline: &due,
		Phases:   []Phase{{ID: 1, Name: "A"}},
		Tasks:    []Task{{ID: "k1", PhaseID: 1, Deadline: &due}},
	}

	c := orig.Clone()
	c.Phases[0].Completed = true
	c.Tasks[0].Completed = true
	*c.Tasks[0].Deadline = due.AddDate(0, 0, 1)
	*c.Deadline = due.AddDate(0, 0, 2)

	assert.False(t, orig.Phases[0].Completed)
	assert.False(t, orig.Tasks[0].Completed)
	assert.Equal(t, testDay, *orig.Tasks[0].Deadline)
	assert.Equal(t, testDay, *orig.Deadline)
}

func TestSortedPhases_AscendingByID(t *testing.T) {
	tk := Ticket{Phases: []Phase{{ID: 3}, {ID: 1}, {ID: 2}}}
	sorted := tk.SortedPhases()
	require.Len(t, sorted, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{sorted[0].ID, sorted[1].ID, sorted[2].ID})
	assert.Equal(t, 3, tk.Phases[0].ID, "input order untouched")
}

func TestNextPhaseID(t *testing.T) {
	assert.Equal(t, 1, Ticket{}.NextPhaseID())
	assert.Equal(t, 8, Ticket{Phases: []Phase{{ID: 2}, {ID: 7}}}.NextPhaseID())
}

func TestTasksInPhase_KeepsListOrder(t *testing.T) {
	tk := Ticket{Tasks: []Task{
		{ID: "a", PhaseID: 1}, {ID: "b", PhaseID: 2}, {ID: "c", PhaseID: 1},
	}}
	got := tk.TasksInPhase(1)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestCompletedCount(t *testing.T) {
	tk := Ticket{Tasks: []Task{{Completed: true}, {}, {Completed: true}}}
	done, total := tk.CompletedCount()
	assert.Equal(t, 2, done)
	assert.Equal(t, 3, total)
}

func TestParsePriority(t *testing.T) {
	cases := map[string]Priority{
		"high": PriorityHigh, "HIGH": PriorityHigh, "Low": PriorityLow, "": PriorityMedium,
	}
	for in, want := range cases {
		got, err := ParsePriority(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParsePriority("urgent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "urgent")
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(testDay, time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)))
	assert.False(t, SameDay(testDay, testDay.AddDate(0, 0, 1)))
}

func TestTimeEntry_Elapsed(t *testing.T) {
	stop := testDay.Add(90 * time.Minute)
	e := TimeEntry{StartedAt: testDay, StoppedAt: &stop}
	assert.False(t, e.Running())
	assert.Equal(t, 90*time.Minute, e.Elapsed(testDay.Add(5*time.Hour)))

	running := TimeEntry{StartedAt: testDay}
	assert.True(t, running.Running())
	assert.Equal(t, 10*time.Minute, running.Elapsed(testDay.Add(10*time.Minute)))
}
