package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/scholia/internal/db"
	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/alexanderramin/scholia/internal/planner"
	"github.com/alexanderramin/scholia/internal/repository"
	"github.com/google/uuid"
)

type todoService struct {
	todos    repository.TodoRepo
	planner  *planner.Planner
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewTodoService(todos repository.TodoRepo, p *planner.Planner, uow db.UnitOfWork, observers ...UseCaseObserver) TodoService {
	return &todoService{
		todos:    todos,
		planner:  p,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      utcNow,
	}
}

func (s *todoService) Create(ctx context.Context, title string) (*domain.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, validationErr("todo title is required")
	}
	now := s.now()
	t := &domain.Todo{ID: uuid.New().String(), Title: title, CreatedAt: now, UpdatedAt: now}
	if err := s.todos.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *todoService) List(ctx context.Context) ([]*domain.Todo, error) {
	return s.todos.List(ctx)
}

func (s *todoService) Complete(ctx context.Context, id string) (*domain.Todo, error) {
	t, err := s.todos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Done = true
	t.UpdatedAt = s.now()
	if err := s.todos.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *todoService) Delete(ctx context.Context, id string) error {
	return s.todos.Delete(ctx, id)
}

// Prioritize reorders the list following the model's ranking. A ranking that
// names an unknown todo leaves the order untouched.
func (s *todoService) Prioritize(ctx context.Context) (out []*domain.Todo, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "prioritize-todos", startedAt, fields, &err)

	todos, err := s.todos.List(ctx)
	if err != nil {
		return nil, err
	}
	fields["todos"] = len(todos)
	if len(todos) == 0 {
		return todos, nil
	}
	order, err := s.planner.RankTodos(ctx, todos)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteTodoRepo(tx)
		if err := repo.Reorder(ctx, order); err != nil {
			return err
		}
		list, err := repo.List(ctx)
		if err != nil {
			return err
		}
		out = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
