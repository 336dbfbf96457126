package progress

import (
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func due(d time.Time) *time.Time { return &d }

func focusKeys(items []FocusItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.TicketID + "/" + it.Task.ID
	}
	return out
}

func TestTodaysFocus_DueTodayBeforeOverdue(t *testing.T) {
	tickets := []domain.Ticket{
		{
			ID: "high", Priority: domain.PriorityHigh,
			Phases: []domain.Phase{{ID: 1}},
			Tasks:  []domain.Task{{ID: "late", PhaseID: 1, Deadline: due(date(2025, 6, 14))}},
		},
		{
			ID: "med", Priority: domain.PriorityMedium,
			Phases: []domain.Phase{{ID: 1}},
			Tasks:  []domain.Task{{ID: "today", PhaseID: 1, Deadline: due(date(2025, 6, 15))}},
		},
	}

	got := TodaysFocus(tickets, testToday)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"med/today", "high/late"}, focusKeys(got))
	assert.True(t, got[0].DueToday)
	assert.Equal(t, ReasonDueToday, got[0].Reason)
	assert.True(t, got[1].Overdue)
	assert.Equal(t, ReasonOverdue, got[1].Reason)
}

func TestTodaysFocus_PicksPerPriority(t *testing.T) {
	mk := func(id string, p domain.Priority) domain.Ticket {
		tk := domain.Ticket{ID: id, Priority: p, Phases: []domain.Phase{{ID: 1}}}
		for i := 0; i < 4; i++ {
			tk.Tasks = append(tk.Tasks, domain.Task{ID: fmt.Sprintf("t%d", i), PhaseID: 1})
		}
		return tk
	}
	tickets := []domain.Ticket{mk("low", domain.PriorityLow), mk("high", domain.PriorityHigh)}

	got := TodaysFocus(tickets, testToday)
	assert.Equal(t, []string{"high/t0", "high/t1", "low/t0"}, focusKeys(got))
	for _, it := range got {
		assert.Equal(t, ReasonRelevant, it.Reason)
	}
}

func TestTodaysFocus_DeduplicatesAcrossBuckets(t *testing.T) {
	tickets := []domain.Ticket{{
		ID: "high", Priority: domain.PriorityHigh,
		Phases: []domain.Phase{{ID: 1}},
		Tasks: []domain.Task{
			{ID: "a", PhaseID: 1, Deadline: due(date(2025, 6, 15))},
			{ID: "b", PhaseID: 1, Deadline: due(date(2025, 6, 1))},
		},
	}}

	got := TodaysFocus(tickets, testToday)
	assert.Equal(t, []string{"high/a", "high/b"}, focusKeys(got))
	assert.Equal(t, ReasonDueToday, got[0].Reason, "first bucket wins")
}

func TestTodaysFocus_HighPriorityWinsTies(t *testing.T) {
	today := due(date(2025, 6, 15))
	tickets := []domain.Ticket{
		{ID: "med", Priority: domain.PriorityMedium, Tasks: []domain.Task{{ID: "m", Deadline: today}}},
		{ID: "high", Priority: domain.PriorityHigh, Tasks: []domain.Task{{ID: "h", Deadline: today}}},
	}
	assert.Equal(t, []string{"high/h", "med/m"}, focusKeys(TodaysFocus(tickets, testToday)))
}

func TestTodaysFocus_CapsAndSkipsCompleted(t *testing.T) {
	tk := domain.Ticket{ID: "p", Priority: domain.PriorityLow}
	for i := 0; i < 8; i++ {
		tk.Tasks = append(tk.Tasks, domain.Task{
			ID:        fmt.Sprintf("t%d", i),
			Deadline:  due(date(2025, 6, 15)),
			Completed: i%4 == 0,
		})
	}

	got := TodaysFocus([]domain.Ticket{tk}, testToday)
	require.Len(t, got, MaxFocus)
	seen := map[string]bool{}
	for _, it := range got {
		assert.False(t, it.Task.Completed)
		key := it.TicketID + "/" + it.Task.ID
		assert.False(t, seen[key], "duplicate %s", key)
		seen[key] = true
	}
	assert.Equal(t, []string{"p/t1", "p/t2", "p/t3", "p/t5", "p/t6"}, focusKeys(got))
}

func TestTodaysFocus_FutureDeadlinesAreNotUrgent(t *testing.T) {
	tickets := []domain.Ticket{{
		ID: "p", Priority: domain.PriorityMedium,
		Tasks: []domain.Task{{ID: "soon", Deadline: due(date(2025, 6, 20))}},
	}}
	got := TodaysFocus(tickets, testToday)
	require.Len(t, got, 1)
	assert.False(t, got[0].DueToday)
	assert.False(t, got[0].Overdue)
}

func TestTodaysFocus_Empty(t *testing.T) {
	assert.Empty(t, TodaysFocus(nil, testToday))
}

func TestSortFocus_Stable(t *testing.T) {
	items := []FocusItem{
		{TicketID: "a", Priority: domain.PriorityLow},
		{TicketID: "b", Priority: domain.PriorityHigh, Overdue: true},
		{TicketID: "c", Priority: domain.PriorityLow},
		{TicketID: "d", Priority: domain.PriorityLow, DueToday: true},
	}
	SortFocus(items)
	assert.Equal(t, []string{"d", "b", "a", "c"}, []string{items[0].TicketID, items[1].TicketID, items[2].TicketID, items[3].TicketID})
}
