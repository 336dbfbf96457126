package domain

import (
	"sort"
	"time"
)

// Ticket is a research project broken into phases and tasks.
type Ticket struct {
	ID             string
	Title          string
	Description    string
	Priority       Priority
	Deadline       *time.Time
	Status         TicketStatus
	Progress       int
	EstimatedHours float64
	Phases         []Phase
	Tasks          []Task
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Phase struct {
	ID        int // unique within the ticket; ascending order is phase order
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Completed bool
}

type Task struct {
	ID        string
	PhaseID   int
	Title     string
	Completed bool
	Deadline  *time.Time
	Source    TaskSource
	CreatedAt time.Time
}

// Clone returns a deep copy. Engine operations never mutate their input, so
// every derived snapshot starts from a clone.
func (t Ticket) Clone() Ticket {
	c := t
	c.Deadline = cloneTime(t.Deadline)
	c.Phases = append([]Phase(nil), t.Phases...)
	c.Tasks = make([]Task, len(t.Tasks))
	for i, task := range t.Tasks {
		task.Deadline = cloneTime(task.Deadline)
		c.Tasks[i] = task
	}
	return c
}

// SortedPhases returns the phases ordered by ascending ID.
func (t Ticket) SortedPhases() []Phase {
	phases := append([]Phase(nil), t.Phases...)
	sort.SliceStable(phases, func(i, j int) bool { return phases[i].ID < phases[j].ID })
	return phases
}

// Phase returns the phase with the given ID.
func (t Ticket) Phase(id int) (Phase, bool) {
	for _, p := range t.Phases {
		if p.ID == id {
			return p, true
		}
	}
	return Phase{}, false
}

// Task returns the task with the given ID.
func (t Ticket) Task(id string) (Task, bool) {
	for _, task := range t.Tasks {
		if task.ID == id {
			return task, true
		}
	}
	return Task{}, false
}

// TasksInPhase returns the tasks that reference phaseID, in list order.
func (t Ticket) TasksInPhase(phaseID int) []Task {
	var out []Task
	for _, task := range t.Tasks {
		if task.PhaseID == phaseID {
			out = append(out, task)
		}
	}
	return out
}

// NextPhaseID returns one past the highest phase ID.
func (t Ticket) NextPhaseID() int {
	next := 1
	for _, p := range t.Phases {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}

// CompletedCount returns the number of completed tasks and the total.
func (t Ticket) CompletedCount() (done, total int) {
	for _, task := range t.Tasks {
		total++
		if task.Completed {
			done++
		}
	}
	return done, total
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
