package service

import (
	"context"
	"time"

	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/alexanderramin/scholia/internal/progress"
	"github.com/alexanderramin/scholia/internal/repository"
)

type focusService struct {
	tickets repository.TicketRepo
	now     func() time.Time
}

func NewFocusService(tickets repository.TicketRepo) FocusService {
	return &focusService{tickets: tickets, now: localNow}
}

func (s *focusService) TodaysFocus(ctx context.Context) ([]progress.FocusItem, error) {
	list, err := s.tickets.List(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := make([]domain.Ticket, len(list))
	for i, t := range list {
		snapshot[i] = *t
	}
	return progress.TodaysFocus(snapshot, s.now()), nil
}

func (s *focusService) RelevantTasks(ctx context.Context, ticketID string) ([]domain.Task, error) {
	t, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return progress.RelevantTasks(*t), nil
}
