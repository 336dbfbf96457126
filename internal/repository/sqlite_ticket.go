package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/scholia/internal/db"
	"github.com/alexanderramin/scholia/internal/domain"
)

const ticketColumns = `id, title, description, priority, deadline, status, progress,
		estimated_hours, created_at, updated_at`

// SQLiteTicketRepo implements TicketRepo using a SQLite database.
type SQLiteTicketRepo struct {
	db     db.DBTX
	phases *SQLitePhaseRepo
	tasks  *SQLiteTaskRepo
}

func NewSQLiteTicketRepo(conn db.DBTX) *SQLiteTicketRepo {
	return &SQLiteTicketRepo{
		db:     conn,
		phases: NewSQLitePhaseRepo(conn),
		tasks:  NewSQLiteTaskRepo(conn),
	}
}

func (r *SQLiteTicketRepo) Create(ctx context.Context, t *domain.Ticket) error {
	query := `INSERT INTO tickets (` + ticketColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		string(t.Priority),
		nullableTimeToString(t.Deadline, dateLayout),
		string(t.Status),
		t.Progress,
		t.EstimatedHours,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting ticket: %w", err)
	}
	return nil
}

func (r *SQLiteTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = ?`
	t, err := scanTicket(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("ticket %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	if t.Phases, err = r.phases.ListByTicket(ctx, id); err != nil {
		return nil, err
	}
	if t.Tasks, err = r.tasks.ListByTicket(ctx, id); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns every ticket ordered by creation time, with phases and tasks
// loaded in two bulk queries.
func (r *SQLiteTicketRepo) List(ctx context.Context) ([]*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	var tickets []*domain.Ticket
	byID := make(map[string]*domain.Ticket)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		tickets = append(tickets, t)
		byID[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating tickets: %w", err)
	}
	rows.Close()

	phases, err := r.phases.listAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range phases {
		if t, ok := byID[p.ticketID]; ok {
			t.Phases = append(t.Phases, p.Phase)
		}
	}
	tasks, err := r.tasks.listAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, task := range tasks {
		if t, ok := byID[task.ticketID]; ok {
			t.Tasks = append(t.Tasks, task.Task)
		}
	}
	return tickets, nil
}

func (r *SQLiteTicketRepo) Update(ctx context.Context, t *domain.Ticket) error {
	query := `UPDATE tickets SET title = ?, description = ?, priority = ?, deadline = ?,
		status = ?, progress = ?, estimated_hours = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		string(t.Priority),
		nullableTimeToString(t.Deadline, dateLayout),
		string(t.Status),
		t.Progress,
		t.EstimatedHours,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating ticket: %w", err)
	}
	return expectAffected(res, "ticket", t.ID)
}

func (r *SQLiteTicketRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting ticket: %w", err)
	}
	return expectAffected(res, "ticket", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	var t domain.Ticket
	var priority, status, createdAt, updatedAt string
	var deadline sql.NullString

	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &priority, &deadline, &status,
		&t.Progress, &t.EstimatedHours, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning ticket: %w", err)
	}

	t.Priority = domain.Priority(priority)
	t.Status = domain.TicketStatus(status)
	t.Deadline = parseNullableTime(deadline, dateLayout)
	if t.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
