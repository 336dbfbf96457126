package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/scholia/internal/domain"
)

const (
	maxPhases        = 8
	maxTasksPerPhase = 8
)

// ValidatePlan reports every problem in the draft at once.
func ValidatePlan(p PlanDraft) error {
	var errs []error
	if len(p.Phases) == 0 {
		errs = append(errs, errors.New("plan has no phases"))
	}
	if len(p.Phases) > maxPhases {
		errs = append(errs, fmt.Errorf("plan has %d phases, at most %d allowed", len(p.Phases), maxPhases))
	}
	for i, ph := range p.Phases {
		errs = append(errs, validatePhase(i, ph)...)
	}
	return errors.Join(errs...)
}

func validatePhase(i int, ph PhaseDraft) []error {
	var errs []error
	at := fmt.Sprintf("phases[%d]", i)
	if strings.TrimSpace(ph.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", at))
	}
	start, err := domain.ParseDate(ph.StartDate)
	if err != nil {
		errs = append(errs, fmt.Errorf("%s.start_date: %w", at, err))
	}
	end, err := domain.ParseDate(ph.EndDate)
	if err != nil {
		errs = append(errs, fmt.Errorf("%s.end_date: %w", at, err))
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs = append(errs, fmt.Errorf("%s ends before it starts", at))
	}
	if len(ph.Tasks) > maxTasksPerPhase {
		errs = append(errs, fmt.Errorf("%s has %d tasks, at most %d allowed", at, len(ph.Tasks), maxTasksPerPhase))
	}
	for j, task := range ph.Tasks {
		if strings.TrimSpace(task.Title) == "" {
			errs = append(errs, fmt.Errorf("%s.tasks[%d].title is required", at, j))
		}
		if _, err := domain.ParseOptionalDate(task.Deadline); err != nil {
			errs = append(errs, fmt.Errorf("%s.tasks[%d].deadline: %w", at, j, err))
		}
	}
	return errs
}

// ValidateOrder rejects orderings that are empty or list an ID twice.
func ValidateOrder(o TodoOrder) error {
	if len(o.Order) == 0 {
		return errors.New("order is empty")
	}
	seen := make(map[string]bool, len(o.Order))
	for _, id := range o.Order {
		if seen[id] {
			return fmt.Errorf("id %q listed twice", id)
		}
		seen[id] = true
	}
	return nil
}

// ErrUnknownTodo marks an ordering that names a todo which does not exist.
var ErrUnknownTodo = errors.New("unknown todo id")

// ReconcileOrder applies a proposed ordering to the current one. Unknown IDs
// are rejected; IDs the proposal leaves out keep their relative order after
// the proposed ones.
func ReconcileOrder(current, proposed []string) ([]string, error) {
	known := make(map[string]bool, len(current))
	for _, id := range current {
		known[id] = true
	}
	placed := make(map[string]bool, len(proposed))
	out := make([]string, 0, len(current))
	for _, id := range proposed {
		if !known[id] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTodo, id)
		}
		if placed[id] {
			continue
		}
		placed[id] = true
		out = append(out, id)
	}
	for _, id := range current {
		if !placed[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

