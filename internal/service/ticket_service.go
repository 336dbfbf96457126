package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/scholia/internal/db"
	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/alexanderramin/scholia/internal/progress"
	"github.com/alexanderramin/scholia/internal/repository"
	"github.com/google/uuid"
)

type ticketService struct {
	tickets  repository.TicketRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
	today    func() time.Time
	newID    func() string
}

func NewTicketService(tickets repository.TicketRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TicketService {
	return &ticketService{
		tickets:  tickets,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      utcNow,
		today:    localNow,
		newID:    uuid.NewString,
	}
}

// txRepos are the repositories bound to one transaction.
type txRepos struct {
	tickets *repository.SQLiteTicketRepo
	phases  *repository.SQLitePhaseRepo
	tasks   *repository.SQLiteTaskRepo
}

func newTxRepos(tx db.DBTX) txRepos {
	return txRepos{
		tickets: repository.NewSQLiteTicketRepo(tx),
		phases:  repository.NewSQLitePhaseRepo(tx),
		tasks:   repository.NewSQLiteTaskRepo(tx),
	}
}

// Create stores the ticket together with any phases and tasks it carries.
func (s *ticketService) Create(ctx context.Context, t *domain.Ticket) error {
	if err := validateTicket(t); err != nil {
		return err
	}
	for i := range t.Phases {
		if err := validatePhase(&t.Phases[i]); err != nil {
			return err
		}
		if t.Phases[i].ID == 0 {
			t.Phases[i].ID = t.NextPhaseID()
		}
	}
	for i := range t.Tasks {
		if err := validateTask(&t.Tasks[i], *t); err != nil {
			return err
		}
	}

	now := s.now()
	if t.ID == "" {
		t.ID = s.newID()
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	for i := range t.Tasks {
		s.stampTask(&t.Tasks[i], domain.SourceManual)
	}
	*t = progress.ApplyProgress(*t)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		if err := r.tickets.Create(ctx, t); err != nil {
			return err
		}
		for i := range t.Phases {
			if err := r.phases.Create(ctx, t.ID, &t.Phases[i]); err != nil {
				return err
			}
		}
		for i := range t.Tasks {
			if err := r.tasks.Create(ctx, t.ID, &t.Tasks[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *ticketService) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

func (s *ticketService) List(ctx context.Context) ([]*domain.Ticket, error) {
	return s.tickets.List(ctx)
}

// Update writes the ticket's own fields. Phases and tasks go through their
// dedicated operations.
func (s *ticketService) Update(ctx context.Context, t *domain.Ticket) error {
	if err := validateTicket(t); err != nil {
		return err
	}
	t.UpdatedAt = s.now()
	return s.tickets.Update(ctx, t)
}

func (s *ticketService) Delete(ctx context.Context, id string) error {
	return s.tickets.Delete(ctx, id)
}

func (s *ticketService) AddPhase(ctx context.Context, ticketID string, p *domain.Phase) error {
	if err := validatePhase(p); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		ticket, err := r.tickets.GetByID(ctx, ticketID)
		if err != nil {
			return err
		}
		if _, exists := ticket.Phase(p.ID); p.ID != 0 && exists {
			return validationErr("phase %d already exists on ticket %s", p.ID, ticketID)
		}
		return r.phases.Create(ctx, ticketID, p)
	})
}

func (s *ticketService) SetPhaseCompleted(ctx context.Context, ticketID string, phaseID int, done bool) (*domain.Ticket, error) {
	var out *domain.Ticket
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		ticket, err := r.tickets.GetByID(ctx, ticketID)
		if err != nil {
			return err
		}
		next, ok := progress.SetPhaseCompleted(*ticket, phaseID, done)
		if !ok {
			return fmt.Errorf("phase %d: %w", phaseID, repository.ErrNotFound)
		}
		phase, _ := next.Phase(phaseID)
		if err := r.phases.Update(ctx, ticketID, phase); err != nil {
			return err
		}
		out = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeletePhase removes the phase and every task filed under it.
func (s *ticketService) DeletePhase(ctx context.Context, ticketID string, phaseID int) (*domain.Ticket, error) {
	return s.mutate(ctx, ticketID, func(ctx context.Context, r txRepos, t *domain.Ticket) error {
		if _, ok := t.Phase(phaseID); !ok {
			return fmt.Errorf("phase %d: %w", phaseID, repository.ErrNotFound)
		}
		for _, task := range t.TasksInPhase(phaseID) {
			if err := r.tasks.Delete(ctx, t.ID, task.ID); err != nil {
				return err
			}
			t.Tasks = removeTask(t.Tasks, task.ID)
		}
		if err := r.phases.Delete(ctx, t.ID, phaseID); err != nil {
			return err
		}
		phases := t.Phases[:0:0]
		for _, p := range t.Phases {
			if p.ID != phaseID {
				phases = append(phases, p)
			}
		}
		t.Phases = phases
		return nil
	})
}

func (s *ticketService) AddTask(ctx context.Context, ticketID string, task *domain.Task) (*domain.Ticket, error) {
	return s.mutate(ctx, ticketID, func(ctx context.Context, r txRepos, t *domain.Ticket) error {
		if err := validateTask(task, *t); err != nil {
			return err
		}
		s.stampTask(task, domain.SourceManual)
		if err := r.tasks.Create(ctx, t.ID, task); err != nil {
			return err
		}
		t.Tasks = append(t.Tasks, *task)
		return nil
	})
}

// UpdateTask edits title, phase and deadline. Completion only changes through
// ToggleTask so the phase cascade always runs.
func (s *ticketService) UpdateTask(ctx context.Context, ticketID string, task domain.Task) (*domain.Ticket, error) {
	return s.mutate(ctx, ticketID, func(ctx context.Context, r txRepos, t *domain.Ticket) error {
		existing, ok := t.Task(task.ID)
		if !ok {
			return fmt.Errorf("task %s: %w", task.ID, repository.ErrNotFound)
		}
		if err := validateTask(&task, *t); err != nil {
			return err
		}
		task.Completed = existing.Completed
		task.Source = existing.Source
		task.CreatedAt = existing.CreatedAt
		if err := r.tasks.Update(ctx, t.ID, task); err != nil {
			return err
		}
		for i := range t.Tasks {
			if t.Tasks[i].ID == task.ID {
				t.Tasks[i] = task
			}
		}
		return nil
	})
}

func (s *ticketService) DeleteTask(ctx context.Context, ticketID, taskID string) (*domain.Ticket, error) {
	return s.mutate(ctx, ticketID, func(ctx context.Context, r txRepos, t *domain.Ticket) error {
		if err := r.tasks.Delete(ctx, t.ID, taskID); err != nil {
			return err
		}
		t.Tasks = removeTask(t.Tasks, taskID)
		return nil
	})
}

// ToggleTask runs the progress engine on the stored ticket and persists the
// resulting diff in one transaction.
func (s *ticketService) ToggleTask(ctx context.Context, ticketID, taskID string) (out *ToggleOutcome, err error) {
	startedAt := time.Now()
	fields := map[string]any{"ticket_id": ticketID, "task_id": taskID}
	defer observe(ctx, s.observer, "toggle-task", startedAt, fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		before, err := r.tickets.GetByID(ctx, ticketID)
		if err != nil {
			return err
		}
		after, res := progress.ToggleTicketTask(*before, taskID,
			progress.WithClock(s.now),
			progress.WithToday(s.today),
			progress.WithIDGenerator(s.newID),
		)
		if !res.Found {
			return fmt.Errorf("task %s: %w", taskID, repository.ErrNotFound)
		}

		if err := r.tasks.Update(ctx, ticketID, res.Task); err != nil {
			return err
		}
		for _, p := range after.Phases {
			old, _ := before.Phase(p.ID)
			if old.Completed == p.Completed {
				continue
			}
			if err := r.phases.Update(ctx, ticketID, p); err != nil {
				return err
			}
		}
		for i := range res.AutoFilled {
			if err := r.tasks.Create(ctx, ticketID, &res.AutoFilled[i]); err != nil {
				return err
			}
		}
		after.UpdatedAt = s.now()
		if err := r.tickets.Update(ctx, &after); err != nil {
			return err
		}
		out = &ToggleOutcome{Ticket: &after, ToggleResult: res}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["completed"] = out.Task.Completed
	fields["progress"] = out.Ticket.Progress
	fields["phases_completed"] = len(out.CompletedPhases)
	fields["auto_filled"] = len(out.AutoFilled)
	return out, nil
}

// mutate loads the ticket inside a transaction, applies fn, then recomputes
// and stores progress.
func (s *ticketService) mutate(ctx context.Context, ticketID string, fn func(ctx context.Context, r txRepos, t *domain.Ticket) error) (*domain.Ticket, error) {
	var out *domain.Ticket
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		ticket, err := r.tickets.GetByID(ctx, ticketID)
		if err != nil {
			return err
		}
		if err := fn(ctx, r, ticket); err != nil {
			return err
		}
		next := progress.ApplyProgress(*ticket)
		next.UpdatedAt = s.now()
		if err := r.tickets.Update(ctx, &next); err != nil {
			return err
		}
		out = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ticketService) stampTask(t *domain.Task, source domain.TaskSource) {
	if t.ID == "" {
		t.ID = s.newID()
	}
	if t.Source == "" {
		t.Source = source
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
}
