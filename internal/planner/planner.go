package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/alexanderramin/scholia/internal/llm"
)

// Planner asks the model for plans and orderings and decodes its answers.
type Planner struct {
	client llm.LLMClient
}

func New(client llm.LLMClient) *Planner {
	return &Planner{client: client}
}

// DraftPlan requests phases and tasks for the ticket.
func (p *Planner) DraftPlan(ctx context.Context, t domain.Ticket, brief string, today time.Time) (PlanDraft, error) {
	resp, err := p.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskPlan,
		SystemPrompt: planSystemPrompt,
		UserPrompt:   planPrompt(t, brief, today),
		JSON:         true,
	})
	if err != nil {
		return PlanDraft{}, fmt.Errorf("llm plan generation failed: %w", err)
	}
	draft, err := llm.ExtractJSON(resp.Text, ValidatePlan)
	if err != nil {
		return PlanDraft{}, fmt.Errorf("failed to extract plan: %w", err)
	}
	return draft, nil
}

// RankTodos requests an ordering of the open todos and reconciles it with
// the current order of all todos.
func (p *Planner) RankTodos(ctx context.Context, todos []*domain.Todo) ([]string, error) {
	current := make([]string, len(todos))
	var b strings.Builder
	n := 0
	for i, td := range todos {
		current[i] = td.ID
		if td.Done {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d. id=%s title=%q\n", n, td.ID, td.Title)
	}
	if n == 0 {
		return current, nil
	}

	resp, err := p.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskPrioritize,
		SystemPrompt: prioritizeSystemPrompt,
		UserPrompt:   b.String(),
		JSON:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("llm prioritization failed: %w", err)
	}
	order, err := llm.ExtractJSON(resp.Text, ValidateOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to extract todo order: %w", err)
	}
	return ReconcileOrder(current, order.Order)
}

func planPrompt(t domain.Ticket, brief string, today time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Today: %s\n", today.Format(domain.DateLayout))
	fmt.Fprintf(&b, "Project: %s\n", t.Title)
	if t.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", t.Description)
	}
	fmt.Fprintf(&b, "Priority: %s\n", t.Priority)
	if t.Deadline != nil {
		fmt.Fprintf(&b, "Deadline: %s\n", t.Deadline.Format(domain.DateLayout))
	}
	if t.EstimatedHours > 0 {
		fmt.Fprintf(&b, "Estimated hours: %.1f\n", t.EstimatedHours)
	}
	if len(t.Phases) > 0 {
		b.WriteString("Existing phases (keep them, add what is missing):\n")
		for _, ph := range t.SortedPhases() {
			fmt.Fprintf(&b, "- %s\n", ph.Name)
		}
	}
	if brief = strings.TrimSpace(brief); brief != "" {
		fmt.Fprintf(&b, "Brief: %s\n", brief)
	}
	return b.String()
}

// Materialize converts a validated draft into phases numbered from firstID
// and their tasks. IDs and timestamps come from the caller.
func Materialize(d PlanDraft, firstID int, newID func() string, now time.Time) ([]domain.Phase, []domain.Task, error) {
	phases := make([]domain.Phase, 0, len(d.Phases))
	var tasks []domain.Task
	for i, pd := range d.Phases {
		start, err := domain.ParseDate(pd.StartDate)
		if err != nil {
			return nil, nil, fmt.Errorf("phase %q start: %w", pd.Name, err)
		}
		end, err := domain.ParseDate(pd.EndDate)
		if err != nil {
			return nil, nil, fmt.Errorf("phase %q end: %w", pd.Name, err)
		}
		ph := domain.Phase{ID: firstID + i, Name: strings.TrimSpace(pd.Name), StartDate: start, EndDate: end}
		phases = append(phases, ph)

		for _, td := range pd.Tasks {
			deadline, err := domain.ParseOptionalDate(td.Deadline)
			if err != nil {
				return nil, nil, fmt.Errorf("task %q deadline: %w", td.Title, err)
			}
			tasks = append(tasks, domain.Task{
				ID:        newID(),
				PhaseID:   ph.ID,
				Title:     strings.TrimSpace(td.Title),
				Deadline:  deadline,
				Source:    domain.SourceAIPlan,
				CreatedAt: now,
			})
		}
	}
	return phases, tasks, nil
}
