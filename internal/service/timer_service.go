package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/scholia/internal/db"
	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/alexanderramin/scholia/internal/repository"
	"github.com/google/uuid"
)

type timerService struct {
	entries  repository.TimeEntryRepo
	tickets  repository.TicketRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewTimerService(entries repository.TimeEntryRepo, tickets repository.TicketRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TimerService {
	return &timerService{
		entries:  entries,
		tickets:  tickets,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      utcNow,
	}
}

// Start opens a stopwatch row for the ticket. Only one timer runs at a time.
func (s *timerService) Start(ctx context.Context, ticketID, note string) (entry *domain.TimeEntry, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "timer-start", startedAt, map[string]any{"ticket_id": ticketID}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		entries := repository.NewSQLiteTimeEntryRepo(tx)
		if _, err := repository.NewSQLiteTicketRepo(tx).GetByID(ctx, ticketID); err != nil {
			return err
		}
		running, err := entries.GetActive(ctx)
		switch {
		case err == nil:
			return fmt.Errorf("%w on ticket %s", ErrTimerRunning, running.TicketID)
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}
		entry = &domain.TimeEntry{
			ID:        uuid.New().String(),
			TicketID:  ticketID,
			Note:      strings.TrimSpace(note),
			StartedAt: s.now().Truncate(time.Second),
		}
		return entries.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *timerService) Stop(ctx context.Context) (entry *domain.TimeEntry, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "timer-stop", startedAt, nil, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		entries := repository.NewSQLiteTimeEntryRepo(tx)
		active, err := entries.GetActive(ctx)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNoActiveTimer
			}
			return err
		}
		stopped := s.now().Truncate(time.Second)
		if err := entries.Stop(ctx, active.ID, stopped); err != nil {
			return err
		}
		active.StoppedAt = &stopped
		entry = active
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *timerService) Active(ctx context.Context) (*domain.TimeEntry, error) {
	entry, err := s.entries.GetActive(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoActiveTimer
	}
	return entry, err
}

func (s *timerService) Summary(ctx context.Context, ticketID string) (domain.TimeSummary, error) {
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return domain.TimeSummary{}, err
	}
	return s.entries.SummaryByTicket(ctx, ticketID, s.now())
}
