package service

import (
	"context"
	"time"

	"github.com/alexanderramin/scholia/internal/db"
	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/alexanderramin/scholia/internal/planner"
	"github.com/alexanderramin/scholia/internal/progress"
	"github.com/alexanderramin/scholia/internal/repository"
	"github.com/google/uuid"
)

type planService struct {
	tickets  repository.TicketRepo
	planner  *planner.Planner
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
	today    func() time.Time
}

func NewPlanService(tickets repository.TicketRepo, p *planner.Planner, uow db.UnitOfWork, observers ...UseCaseObserver) PlanService {
	return &planService{
		tickets:  tickets,
		planner:  p,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      utcNow,
		today:    localNow,
	}
}

// Generate asks the model for a plan and appends its phases and tasks after
// the ticket's existing ones. Nothing is written unless the whole plan is
// valid.
func (s *planService) Generate(ctx context.Context, ticketID, brief string) (res *PlanResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"ticket_id": ticketID}
	defer observe(ctx, s.observer, "generate-plan", startedAt, fields, &err)

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	draft, err := s.planner.DraftPlan(ctx, *ticket, brief, domain.DateOf(s.today()))
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		// Reload inside the transaction; the model call may have taken a while.
		current, err := r.tickets.GetByID(ctx, ticketID)
		if err != nil {
			return err
		}
		phases, tasks, err := planner.Materialize(draft, current.NextPhaseID(), uuid.NewString, now)
		if err != nil {
			return validationErr("%v", err)
		}
		for i := range phases {
			if err := r.phases.Create(ctx, ticketID, &phases[i]); err != nil {
				return err
			}
		}
		for i := range tasks {
			if err := r.tasks.Create(ctx, ticketID, &tasks[i]); err != nil {
				return err
			}
		}

		next := current.Clone()
		next.Phases = append(next.Phases, phases...)
		next.Tasks = append(next.Tasks, tasks...)
		next = progress.ApplyProgress(next)
		next.UpdatedAt = now
		if err := r.tickets.Update(ctx, &next); err != nil {
			return err
		}
		res = &PlanResult{Ticket: &next, PhasesAdded: len(phases), TasksAdded: len(tasks)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["phases_added"] = res.PhasesAdded
	fields["tasks_added"] = res.TasksAdded
	return res, nil
}
