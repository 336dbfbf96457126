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

// SQLiteTimeEntryRepo implements TimeEntryRepo using a SQLite database.
type SQLiteTimeEntryRepo struct {
	db db.DBTX
}

func NewSQLiteTimeEntryRepo(conn db.DBTX) *SQLiteTimeEntryRepo {
	return &SQLiteTimeEntryRepo{db: conn}
}

func (r *SQLiteTimeEntryRepo) Create(ctx context.Context, e *domain.TimeEntry) error {
	query := `INSERT INTO time_entries (id, ticket_id, note, started_at, stopped_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.TicketID,
		e.Note,
		e.StartedAt.UTC().Format(time.RFC3339),
		nullableTimeToString(e.StoppedAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting time entry: %w", err)
	}
	return nil
}

// GetActive returns the running entry, or ErrNotFound when no timer runs.
func (r *SQLiteTimeEntryRepo) GetActive(ctx context.Context) (*domain.TimeEntry, error) {
	query := `SELECT id, ticket_id, note, started_at, stopped_at
		FROM time_entries WHERE stopped_at IS NULL LIMIT 1`
	e, err := scanTimeEntry(r.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("active time entry: %w", ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

func (r *SQLiteTimeEntryRepo) Stop(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE time_entries SET stopped_at = ? WHERE id = ? AND stopped_at IS NULL`,
		at.UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("stopping time entry: %w", err)
	}
	return expectAffected(res, "running time entry", id)
}

func (r *SQLiteTimeEntryRepo) ListByTicket(ctx context.Context, ticketID string) ([]*domain.TimeEntry, error) {
	query := `SELECT id, ticket_id, note, started_at, stopped_at
		FROM time_entries WHERE ticket_id = ? ORDER BY started_at, id`
	rows, err := r.db.QueryContext(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time entries: %w", err)
	}
	return entries, nil
}

// SummaryByTicket totals every entry of the ticket, counting a running entry
// up to now.
func (r *SQLiteTimeEntryRepo) SummaryByTicket(ctx context.Context, ticketID string, now time.Time) (domain.TimeSummary, error) {
	entries, err := r.ListByTicket(ctx, ticketID)
	if err != nil {
		return domain.TimeSummary{}, err
	}
	sum := domain.TimeSummary{TicketID: ticketID, Entries: len(entries)}
	for _, e := range entries {
		sum.Total += e.Elapsed(now)
	}
	return sum, nil
}

func scanTimeEntry(row rowScanner) (*domain.TimeEntry, error) {
	var e domain.TimeEntry
	var startedAt string
	var stoppedAt sql.NullString
	if err := row.Scan(&e.ID, &e.TicketID, &e.Note, &startedAt, &stoppedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning time entry: %w", err)
	}
	var err error
	if e.StartedAt, err = parseTimestamp("started_at", startedAt); err != nil {
		return nil, err
	}
	e.StoppedAt = parseNullableTime(stoppedAt, time.RFC3339)
	return &e, nil
}
