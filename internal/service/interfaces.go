package service

import (
	"context"

	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/alexanderramin/scholia/internal/progress"
)

type TicketService interface {
	Create(ctx context.Context, t *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context) ([]*domain.Ticket, error)
	Update(ctx context.Context, t *domain.Ticket) error
	Delete(ctx context.Context, id string) error

	AddPhase(ctx context.Context, ticketID string, p *domain.Phase) error
	SetPhaseCompleted(ctx context.Context, ticketID string, phaseID int, done bool) (*domain.Ticket, error)
	DeletePhase(ctx context.Context, ticketID string, phaseID int) (*domain.Ticket, error)

	AddTask(ctx context.Context, ticketID string, t *domain.Task) (*domain.Ticket, error)
	UpdateTask(ctx context.Context, ticketID string, t domain.Task) (*domain.Ticket, error)
	DeleteTask(ctx context.Context, ticketID, taskID string) (*domain.Ticket, error)
	ToggleTask(ctx context.Context, ticketID, taskID string) (*ToggleOutcome, error)
}

// ToggleOutcome is the persisted ticket after a toggle together with the
// engine's account of what changed.
type ToggleOutcome struct {
	Ticket *domain.Ticket
	progress.ToggleResult
}

type FocusService interface {
	TodaysFocus(ctx context.Context) ([]progress.FocusItem, error)
	RelevantTasks(ctx context.Context, ticketID string) ([]domain.Task, error)
}

type TimerService interface {
	Start(ctx context.Context, ticketID, note string) (*domain.TimeEntry, error)
	Stop(ctx context.Context) (*domain.TimeEntry, error)
	Active(ctx context.Context) (*domain.TimeEntry, error)
	Summary(ctx context.Context, ticketID string) (domain.TimeSummary, error)
}

// Claims identifies the account behind a verified token.
type Claims struct {
	UserID string
	Email  string
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*Claims, error)
}

// PlanResult reports what a generated plan added to a ticket.
type PlanResult struct {
	Ticket      *domain.Ticket
	PhasesAdded int
	TasksAdded  int
}

type PlanService interface {
	Generate(ctx context.Context, ticketID, brief string) (*PlanResult, error)
}

type TodoService interface {
	Create(ctx context.Context, title string) (*domain.Todo, error)
	List(ctx context.Context) ([]*domain.Todo, error)
	Complete(ctx context.Context, id string) (*domain.Todo, error)
	Delete(ctx context.Context, id string) error
	Prioritize(ctx context.Context) ([]*domain.Todo, error)
}
