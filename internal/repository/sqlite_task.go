package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/scholia/internal/db"
	"github.com/alexanderramin/scholia/internal/domain"
)

const taskColumns = `ticket_id, id, phase_id, title, completed, deadline, source, created_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database. Tasks keep
// insertion order through the position column.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, ticketID string, t *domain.Task) error {
	if t.Source == "" {
		t.Source = domain.SourceManual
	}
	query := `INSERT INTO tasks (id, ticket_id, phase_id, title, completed, deadline, source, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM tasks WHERE ticket_id = ?), ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		ticketID,
		t.PhaseID,
		t.Title,
		boolToInt(t.Completed),
		nullableTimeToString(t.Deadline, dateLayout),
		string(t.Source),
		ticketID,
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ticket_id = ? ORDER BY position, created_at`
	rows, err := r.db.QueryContext(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	scanned, err := scanTasks(rows)
	if err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, len(scanned))
	for i, t := range scanned {
		tasks[i] = t.Task
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, ticketID string, t domain.Task) error {
	query := `UPDATE tasks SET phase_id = ?, title = ?, completed = ?, deadline = ?
		WHERE ticket_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.PhaseID,
		t.Title,
		boolToInt(t.Completed),
		nullableTimeToString(t.Deadline, dateLayout),
		ticketID,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return expectAffected(res, "task", t.ID)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, ticketID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE ticket_id = ? AND id = ?`, ticketID, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return expectAffected(res, "task", id)
}

type ticketTask struct {
	ticketID string
	domain.Task
}

func (r *SQLiteTaskRepo) listAll(ctx context.Context) ([]ticketTask, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY ticket_id, position, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func scanTasks(rows *sql.Rows) ([]ticketTask, error) {
	var out []ticketTask
	for rows.Next() {
		var t ticketTask
		var deadline sql.NullString
		var completed int
		var source, createdAt string
		if err := rows.Scan(&t.ticketID, &t.ID, &t.PhaseID, &t.Title, &completed, &deadline, &source, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		t.Completed = intToBool(completed)
		t.Deadline = parseNullableTime(deadline, dateLayout)
		t.Source = domain.TaskSource(source)
		var err error
		if t.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return out, nil
}
