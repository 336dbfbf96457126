package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/alexanderramin/scholia/internal/progress"
)

// FormatTicketList renders tickets as a table.
func FormatTicketList(tickets []*domain.Ticket, today time.Time) string {
	headers := []string{"ID", "TITLE", "PRIORITY", "STATUS", "PROGRESS", "DEADLINE"}
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, []string{
			TruncID(t.ID),
			Bold(t.Title),
			PriorityBadge(t.Priority),
			StatusPill(t.Status),
			RenderProgress(t.Progress, 10),
			Deadline(t.Deadline, today),
		})
	}
	return RenderTable(headers, rows)
}

// FormatTicketDetail renders one ticket with its phases and their tasks.
// Tasks whose phase no longer exists are listed last.
func FormatTicketDetail(t *domain.Ticket, today time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(t.Title), TruncID(t.ID))
	fmt.Fprintf(&b, "%s  %s  %s\n", PriorityBadge(t.Priority), StatusPill(t.Status), RenderProgress(t.Progress, 20))
	if t.Deadline != nil {
		fmt.Fprintf(&b, "Deadline: %s\n", Deadline(t.Deadline, today))
	}
	if t.EstimatedHours > 0 {
		fmt.Fprintf(&b, "Estimate: %.1fh\n", t.EstimatedHours)
	}
	if t.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", t.Description)
	}

	current, hasCurrent := progress.CurrentPhase(*t)
	for _, p := range t.SortedPhases() {
		b.WriteString("\n")
		marker := "  "
		if hasCurrent && p.ID == current.ID {
			marker = StyleHeader.Render("▶ ")
		}
		fmt.Fprintf(&b, "%s%s %d. %s %s\n", marker, Checkbox(p.Completed), p.ID, Bold(p.Name), phaseDates(p))
		for _, task := range t.TasksInPhase(p.ID) {
			b.WriteString(taskLine("     ", task, today))
		}
	}

	var orphans []domain.Task
	for _, task := range t.Tasks {
		if _, ok := t.Phase(task.PhaseID); !ok {
			orphans = append(orphans, task)
		}
	}
	if len(orphans) > 0 {
		fmt.Fprintf(&b, "\n%s\n", Dim("Unassigned"))
		for _, task := range orphans {
			b.WriteString(taskLine("     ", task, today))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func phaseDates(p domain.Phase) string {
	if p.StartDate.IsZero() {
		return ""
	}
	s := p.StartDate.Format(domain.DateLayout)
	if !p.EndDate.IsZero() {
		s += " → " + p.EndDate.Format(domain.DateLayout)
	}
	return Dim(s)
}

func taskLine(indent string, task domain.Task, today time.Time) string {
	line := fmt.Sprintf("%s%s %s %s", indent, Checkbox(task.Completed), task.Title, TruncID(task.ID))
	if task.Deadline != nil {
		line += "  " + Deadline(task.Deadline, today)
	}
	if task.Source == domain.SourceAutoFill || task.Source == domain.SourceAIPlan {
		line += "  " + StylePurple.Render(string(task.Source))
	}
	return line + "\n"
}

// FormatToggle summarizes what a toggle changed.
func FormatToggle(t *domain.Ticket, res progress.ToggleResult, today time.Time) string {
	var b strings.Builder
	verb := "Reopened"
	if res.Task.Completed {
		verb = "Completed"
	}
	fmt.Fprintf(&b, "%s %q\n", verb, res.Task.Title)
	fmt.Fprintf(&b, "%s  %s\n", RenderProgress(t.Progress, 20), StatusPill(t.Status))
	for _, id := range res.CompletedPhases {
		p, _ := t.Phase(id)
		fmt.Fprintf(&b, "%s phase %d %q complete\n", StyleGreen.Render("✔"), id, p.Name)
	}
	for _, id := range res.ReopenedPhases {
		p, _ := t.Phase(id)
		fmt.Fprintf(&b, "%s phase %d %q reopened\n", StyleYellow.Render("↺"), id, p.Name)
	}
	if len(res.AutoFilled) > 0 {
		fmt.Fprintf(&b, "Added %d tasks to phase %d:\n", len(res.AutoFilled), res.AutoFilled[0].PhaseID)
		for _, task := range res.AutoFilled {
			b.WriteString(taskLine("  ", task, today))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatTasks renders a flat task list, as returned for a ticket's
// relevant tasks.
func FormatTasks(tasks []domain.Task, today time.Time) string {
	var b strings.Builder
	for _, task := range tasks {
		b.WriteString(taskLine("", task, today))
	}
	return strings.TrimRight(b.String(), "\n")
}
