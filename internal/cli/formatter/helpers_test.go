package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/alexanderramin/scholia/internal/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

var today = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRelativeDay(t *testing.T) {
	tests := map[string]time.Time{
		"Today":     day(3, 10),
		"Tomorrow":  day(3, 11),
		"Yesterday": day(3, 9),
		"In 5d":     day(3, 15),
		"In 3w":     day(3, 31),
		"In 3mo":    day(6, 10),
		"4d ago":    day(3, 6),
		"2w ago":    day(2, 20),
	}
	for want, d := range tests {
		t.Run(want, func(t *testing.T) {
			assert.Equal(t, want, RelativeDay(d, today))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0s", FormatDuration(-time.Second))
	assert.Equal(t, "42s", FormatDuration(42*time.Second))
	assert.Equal(t, "3m 07s", FormatDuration(3*time.Minute+7*time.Second+400*time.Millisecond))
	assert.Equal(t, "2h 00m 05s", FormatDuration(2*time.Hour+5*time.Second))
}

func TestDeadline(t *testing.T) {
	assert.Contains(t, Deadline(nil, today), "--")
	d := day(3, 12)
	assert.Contains(t, Deadline(&d, today), "2025-03-12")
	assert.Contains(t, Deadline(&d, today), "In 2d")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "LONG HEADER"}, [][]string{
		{StyleRed.Render("wide cell"), "x"},
		{"y"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, lipgloss.Width(lines[2]), lipgloss.Width("wide cell")+colGap+1)
	assert.Empty(t, RenderTable(nil, nil))
}

func TestFormatTicketDetail(t *testing.T) {
	d := day(3, 12)
	ticket := &domain.Ticket{
		ID: "abcdef123456", Title: "Sleep study", Priority: domain.PriorityHigh,
		Status: domain.StatusInProgress, Progress: 50,
		Phases: []domain.Phase{
			{ID: 2, Name: "Data Collection"},
			{ID: 1, Name: "Literature Review", Completed: true, StartDate: day(3, 1), EndDate: day(3, 14)},
		},
		Tasks: []domain.Task{
			{ID: "t1", PhaseID: 1, Title: "Search papers", Completed: true},
			{ID: "t2", PhaseID: 2, Title: "Prepare instruments", Deadline: &d, Source: domain.SourceAutoFill},
			{ID: "t3", PhaseID: 9, Title: "Stray"},
		},
	}
	out := FormatTicketDetail(ticket, today)
	assert.Contains(t, out, "abcdef12")
	assert.Contains(t, out, "1. Literature Review")
	assert.Contains(t, out, "2025-03-01 → 2025-03-14")
	assert.Contains(t, out, "autofill")
	assert.Contains(t, out, "Unassigned")
	assert.Less(t, strings.Index(out, "Literature Review"), strings.Index(out, "Data Collection"))
}

func TestFormatToggle(t *testing.T) {
	ticket := &domain.Ticket{Progress: 100, Status: domain.StatusCompleted,
		Phases: []domain.Phase{{ID: 1, Name: "Literature Review", Completed: true}}}
	res := progress.ToggleResult{
		Found:           true,
		Task:            domain.Task{Title: "Review papers", Completed: true},
		CompletedPhases: []int{1},
		AutoFilled:      []domain.Task{{PhaseID: 2, Title: "Prepare instruments"}},
	}
	out := FormatToggle(ticket, res, today)
	assert.Contains(t, out, `Completed "Review papers"`)
	assert.Contains(t, out, `phase 1 "Literature Review" complete`)
	assert.Contains(t, out, "Added 1 tasks to phase 2")
}

func TestFormatFocus(t *testing.T) {
	assert.Contains(t, FormatFocus(nil, today), "Nothing needs attention")
	d := day(3, 10)
	out := FormatFocus([]progress.FocusItem{
		{TicketTitle: "Thesis", Priority: domain.PriorityHigh, DueToday: true, Task: domain.Task{Title: "Submit", Deadline: &d}},
		{TicketTitle: "Survey", Priority: domain.PriorityLow, Task: domain.Task{Title: "Pilot"}},
	}, today)
	assert.Contains(t, out, "1. Submit")
	assert.Contains(t, out, "due today")
	assert.Contains(t, out, "2. Pilot")
	assert.Contains(t, out, "next up")
}

func TestFormatTodos(t *testing.T) {
	assert.Contains(t, FormatTodos(nil), "No todos")
	out := FormatTodos([]*domain.Todo{{ID: "1", Title: "a"}, {ID: "2", Title: "b", Done: true}})
	assert.Contains(t, out, " 1. ")
	assert.Contains(t, out, "[x]")
}
