package testutil

import (
	"time"

	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/google/uuid"
)

// Ticket options
type TicketOption func(*domain.Ticket)

func WithPriority(p domain.Priority) TicketOption {
	return func(t *domain.Ticket) {
		t.Priority = p
	}
}

func WithDeadline(d time.Time) TicketOption {
	return func(t *domain.Ticket) {
		t.Deadline = &d
	}
}

func WithStatus(s domain.TicketStatus) TicketOption {
	return func(t *domain.Ticket) {
		t.Status = s
	}
}

func WithProgress(p int) TicketOption {
	return func(t *domain.Ticket) {
		t.Progress = p
	}
}

func WithDescription(d string) TicketOption {
	return func(t *domain.Ticket) {
		t.Description = d
	}
}

// WithPhase appends a phase; its ID is the next free one.
func WithPhase(name string, start time.Time, opts ...PhaseOption) TicketOption {
	return func(t *domain.Ticket) {
		p := domain.Phase{ID: t.NextPhaseID(), Name: name, StartDate: start, EndDate: start.AddDate(0, 0, 14)}
		for _, opt := range opts {
			opt(&p)
		}
		t.Phases = append(t.Phases, p)
	}
}

// WithTask appends a task to the given phase.
func WithTask(phaseID int, title string, opts ...TaskOption) TicketOption {
	return func(t *domain.Ticket) {
		t.Tasks = append(t.Tasks, *NewTestTask(phaseID, title, opts...))
	}
}

func NewTestTicket(title string, opts ...TicketOption) *domain.Ticket {
	now := time.Now().UTC().Truncate(time.Second)
	t := &domain.Ticket{
		ID:        uuid.New().String(),
		Title:     title,
		Priority:  domain.PriorityMedium,
		Status:    domain.StatusPlanned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Phase options
type PhaseOption func(*domain.Phase)

func WithPhaseID(id int) PhaseOption {
	return func(p *domain.Phase) {
		p.ID = id
	}
}

func WithPhaseCompleted() PhaseOption {
	return func(p *domain.Phase) {
		p.Completed = true
	}
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskID(id string) TaskOption {
	return func(t *domain.Task) {
		t.ID = id
	}
}

func WithTaskDeadline(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.Deadline = &d
	}
}

func WithTaskCompleted() TaskOption {
	return func(t *domain.Task) {
		t.Completed = true
	}
}

func NewTestTask(phaseID int, title string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:        uuid.New().String(),
		PhaseID:   phaseID,
		Title:     title,
		Source:    domain.SourceManual,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestTodo(title string) *domain.Todo {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Todo{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
