package progress

import (
	"sort"
	"time"

	"github.com/alexanderramin/scholia/internal/domain"
)

// MaxFocus caps the today's-focus list.
const MaxFocus = 5

const (
	highPriorityPicks  = 2
	otherPriorityPicks = 1
)

// FocusReason records which bucket first contributed a focus item.
type FocusReason string

const (
	ReasonDueToday FocusReason = "due_today"
	ReasonOverdue  FocusReason = "overdue"
	ReasonRelevant FocusReason = "relevant"
)

// FocusItem is one entry of the today's-focus list.
type FocusItem struct {
	TicketID    string
	TicketTitle string
	Priority    domain.Priority
	Task        domain.Task
	Reason      FocusReason
	DueToday    bool
	Overdue     bool
}

type focusKey struct {
	ticketID string
	taskID   string
}

// TodaysFocus ranks at most MaxFocus incomplete tasks across all tickets.
// Candidates are gathered bucket by bucket (due today, overdue, relevant
// tasks of High tickets, relevant tasks of other tickets); the first bucket
// to contribute a task wins. The result is stably sorted by due-today,
// overdue, then High priority.
func TodaysFocus(tickets []domain.Ticket, today time.Time) []FocusItem {
	day := domain.DateOf(today)
	seen := make(map[focusKey]bool)
	var items []FocusItem

	add := func(t domain.Ticket, task domain.Task, reason FocusReason) {
		k := focusKey{ticketID: t.ID, taskID: task.ID}
		if seen[k] {
			return
		}
		seen[k] = true
		item := FocusItem{
			TicketID:    t.ID,
			TicketTitle: t.Title,
			Priority:    t.Priority,
			Task:        task,
			Reason:      reason,
		}
		if task.Deadline != nil {
			due := domain.DateOf(*task.Deadline)
			item.DueToday = due.Equal(day)
			item.Overdue = due.Before(day)
		}
		items = append(items, item)
	}

	for _, t := range tickets {
		for _, task := range t.Tasks {
			if !task.Completed && task.Deadline != nil && domain.DateOf(*task.Deadline).Equal(day) {
				add(t, task, ReasonDueToday)
			}
		}
	}
	for _, t := range tickets {
		for _, task := range t.Tasks {
			if !task.Completed && task.Deadline != nil && domain.DateOf(*task.Deadline).Before(day) {
				add(t, task, ReasonOverdue)
			}
		}
	}
	for _, t := range tickets {
		if t.Priority != domain.PriorityHigh {
			continue
		}
		for _, task := range firstN(RelevantTasks(t), highPriorityPicks) {
			add(t, task, ReasonRelevant)
		}
	}
	for _, t := range tickets {
		if t.Priority == domain.PriorityHigh {
			continue
		}
		for _, task := range firstN(RelevantTasks(t), otherPriorityPicks) {
			add(t, task, ReasonRelevant)
		}
	}

	SortFocus(items)
	if len(items) > MaxFocus {
		items = items[:MaxFocus]
	}
	return items
}

// SortFocus orders items in place: due today first, then overdue, then High
// priority tickets. Ties keep their relative order.
func SortFocus(items []FocusItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.DueToday != b.DueToday {
			return a.DueToday
		}
		if a.Overdue != b.Overdue {
			return a.Overdue
		}
		aHigh, bHigh := a.Priority == domain.PriorityHigh, b.Priority == domain.PriorityHigh
		if aHigh != bHigh {
			return aHigh
		}
		return false
	})
}

func firstN(tasks []domain.Task, n int) []domain.Task {
	if len(tasks) > n {
		return tasks[:n]
	}
	return tasks
}
