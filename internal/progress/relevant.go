package progress

import "github.com/alexanderramin/scholia/internal/domain"

// MaxRelevant caps RelevantTasks results.
const MaxRelevant = 5

// CurrentPhase returns the first incomplete phase in ascending ID order.
func CurrentPhase(t domain.Ticket) (domain.Phase, bool) {
	for _, p := range t.SortedPhases() {
		if !p.Completed {
			return p, true
		}
	}
	return domain.Phase{}, false
}

// RelevantTasks returns up to MaxRelevant incomplete tasks the user should
// look at next. Tasks come from the current phase; when it has none, from
// the following incomplete phase; otherwise from anywhere in the ticket.
func RelevantTasks(t domain.Ticket) []domain.Task {
	phases := t.SortedPhases()
	cur := -1
	for i, p := range phases {
		if !p.Completed {
			cur = i
			break
		}
	}
	if cur < 0 {
		return incomplete(t.Tasks, func(domain.Task) bool { return true })
	}

	if tasks := incompleteInPhase(t, phases[cur].ID); len(tasks) > 0 {
		return tasks
	}
	for _, p := range phases[cur+1:] {
		if p.Completed {
			continue
		}
		if tasks := incompleteInPhase(t, p.ID); len(tasks) > 0 {
			return tasks
		}
		break
	}
	return incomplete(t.Tasks, func(domain.Task) bool { return true })
}

func incompleteInPhase(t domain.Ticket, phaseID int) []domain.Task {
	return incomplete(t.Tasks, func(task domain.Task) bool { return task.PhaseID == phaseID })
}

func incomplete(tasks []domain.Task, keep func(domain.Task) bool) []domain.Task {
	var out []domain.Task
	for _, task := range tasks {
		if task.Completed || !keep(task) {
			continue
		}
		out = append(out, task)
		if len(out) == MaxRelevant {
			break
		}
	}
	return out
}
