package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/scholia/internal/domain"
)

// TicketRepo persists ticket rows. Reads return tickets with their phases
// and tasks attached; writes touch the ticket row only.
type TicketRepo interface {
	Create(ctx context.Context, t *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context) ([]*domain.Ticket, error)
	Update(ctx context.Context, t *domain.Ticket) error
	Delete(ctx context.Context, id string) error
}

type PhaseRepo interface {
	Create(ctx context.Context, ticketID string, p *domain.Phase) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Phase, error)
	NextID(ctx context.Context, ticketID string) (int, error)
	Update(ctx context.Context, ticketID string, p domain.Phase) error
	Delete(ctx context.Context, ticketID string, id int) error
}

type TaskRepo interface {
	Create(ctx context.Context, ticketID string, t *domain.Task) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Task, error)
	Update(ctx context.Context, ticketID string, t domain.Task) error
	Delete(ctx context.Context, ticketID, id string) error
}

type TimeEntryRepo interface {
	Create(ctx context.Context, e *domain.TimeEntry) error
	GetActive(ctx context.Context) (*domain.TimeEntry, error)
	Stop(ctx context.Context, id string, at time.Time) error
	ListByTicket(ctx context.Context, ticketID string) ([]*domain.TimeEntry, error)
	SummaryByTicket(ctx context.Context, ticketID string, now time.Time) (domain.TimeSummary, error)
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type TodoRepo interface {
	Create(ctx context.Context, t *domain.Todo) error
	GetByID(ctx context.Context, id string) (*domain.Todo, error)
	List(ctx context.Context) ([]*domain.Todo, error)
	Update(ctx context.Context, t *domain.Todo) error
	Delete(ctx context.Context, id string) error
	// Reorder assigns positions 1..n following ids.
	Reorder(ctx context.Context, ids []string) error
}
