package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/alexanderramin/scholia/internal/db"
	"github.com/alexanderramin/scholia/internal/domain"
)

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

func NewSQLitePhaseRepo(conn db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: conn}
}

// Create inserts a phase. A zero ID is replaced by the next free ID within
// the ticket.
func (r *SQLitePhaseRepo) Create(ctx context.Context, ticketID string, p *domain.Phase) error {
	if p.ID == 0 {
		id, err := r.NextID(ctx, ticketID)
		if err != nil {
			return err
		}
		p.ID = id
	}
	query := `INSERT INTO phases (ticket_id, id, name, start_date, end_date, completed)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		ticketID,
		p.ID,
		p.Name,
		zeroableDate(p.StartDate),
		zeroableDate(p.EndDate),
		boolToInt(p.Completed),
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

// NextID returns one past the highest phase ID of the ticket.
func (r *SQLitePhaseRepo) NextID(ctx context.Context, ticketID string) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(id), 0) + 1 FROM phases WHERE ticket_id = ?`, ticketID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("allocating phase id: %w", err)
	}
	return id, nil
}

func (r *SQLitePhaseRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.Phase, error) {
	query := `SELECT ticket_id, id, name, start_date, end_date, completed
		FROM phases WHERE ticket_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	scanned, err := scanPhases(rows)
	if err != nil {
		return nil, err
	}
	phases := make([]domain.Phase, len(scanned))
	for i, p := range scanned {
		phases[i] = p.Phase
	}
	return phases, nil
}

func (r *SQLitePhaseRepo) Update(ctx context.Context, ticketID string, p domain.Phase) error {
	query := `UPDATE phases SET name = ?, start_date = ?, end_date = ?, completed = ?
		WHERE ticket_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		zeroableDate(p.StartDate),
		zeroableDate(p.EndDate),
		boolToInt(p.Completed),
		ticketID,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating phase: %w", err)
	}
	return expectAffected(res, "phase", strconv.Itoa(p.ID))
}

func (r *SQLitePhaseRepo) Delete(ctx context.Context, ticketID string, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM phases WHERE ticket_id = ? AND id = ?`, ticketID, id)
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	return expectAffected(res, "phase", strconv.Itoa(id))
}

type ticketPhase struct {
	ticketID string
	domain.Phase
}

func (r *SQLitePhaseRepo) listAll(ctx context.Context) ([]ticketPhase, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ticket_id, id, name, start_date, end_date, completed FROM phases ORDER BY ticket_id, id`)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()
	return scanPhases(rows)
}

func scanPhases(rows *sql.Rows) ([]ticketPhase, error) {
	var out []ticketPhase
	for rows.Next() {
		var p ticketPhase
		var start, end sql.NullString
		var completed int
		if err := rows.Scan(&p.ticketID, &p.ID, &p.Name, &start, &end, &completed); err != nil {
			return nil, fmt.Errorf("scanning phase row: %w", err)
		}
		p.StartDate = parseZeroableDate(start)
		p.EndDate = parseZeroableDate(end)
		p.Completed = intToBool(completed)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return out, nil
}
