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

const todoColumns = `id, title, done, position, created_at, updated_at`

// SQLiteTodoRepo implements TodoRepo using a SQLite database.
type SQLiteTodoRepo struct {
	db db.DBTX
}

func NewSQLiteTodoRepo(conn db.DBTX) *SQLiteTodoRepo {
	return &SQLiteTodoRepo{db: conn}
}

// Create appends the todo after the current last position.
func (r *SQLiteTodoRepo) Create(ctx context.Context, t *domain.Todo) error {
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), 0) + 1 FROM todos`).Scan(&t.Position)
	if err != nil {
		return fmt.Errorf("allocating todo position: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO todos (`+todoColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.Title,
		boolToInt(t.Done),
		t.Position,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting todo: %w", err)
	}
	return nil
}

func (r *SQLiteTodoRepo) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	t, err := scanTodo(r.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("todo %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTodoRepo) List(ctx context.Context) ([]*domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+todoColumns+` FROM todos ORDER BY position, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	defer rows.Close()

	var todos []*domain.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todos: %w", err)
	}
	return todos, nil
}

func (r *SQLiteTodoRepo) Update(ctx context.Context, t *domain.Todo) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE todos SET title = ?, done = ?, position = ?, updated_at = ? WHERE id = ?`,
		t.Title, boolToInt(t.Done), t.Position, t.UpdatedAt.Format(time.RFC3339), t.ID)
	if err != nil {
		return fmt.Errorf("updating todo: %w", err)
	}
	return expectAffected(res, "todo", t.ID)
}

func (r *SQLiteTodoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting todo: %w", err)
	}
	return expectAffected(res, "todo", id)
}

func (r *SQLiteTodoRepo) Reorder(ctx context.Context, ids []string) error {
	for i, id := range ids {
		res, err := r.db.ExecContext(ctx, `UPDATE todos SET position = ? WHERE id = ?`, i+1, id)
		if err != nil {
			return fmt.Errorf("reordering todo %s: %w", id, err)
		}
		if err := expectAffected(res, "todo", id); err != nil {
			return err
		}
	}
	return nil
}

func scanTodo(row rowScanner) (*domain.Todo, error) {
	var t domain.Todo
	var done int
	var createdAt, updatedAt string
	if err := row.Scan(&t.ID, &t.Title, &done, &t.Position, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning todo: %w", err)
	}
	t.Done = intToBool(done)
	var err error
	if t.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
