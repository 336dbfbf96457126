package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the whole
// list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is not idempotent in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE COLLATE NOCASE,
		password_hash TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tickets (
		id              TEXT PRIMARY KEY,
		title           TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		priority        TEXT NOT NULL DEFAULT 'Medium'
		                CHECK(priority IN ('Low','Medium','High')),
		deadline        TEXT,
		status          TEXT NOT NULL DEFAULT 'planned'
		                CHECK(status IN ('planned','in-progress','completed')),
		progress        INTEGER NOT NULL DEFAULT 0
		                CHECK(progress BETWEEN 0 AND 100),
		estimated_hours REAL NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phases (
		ticket_id  TEXT NOT NULL REFERENCES tickets(id) ON DELETE CASCADE,
		id         INTEGER NOT NULL,
		name       TEXT NOT NULL,
		start_date TEXT,
		end_date   TEXT,
		completed  INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (ticket_id, id)
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id         TEXT PRIMARY KEY,
		ticket_id  TEXT NOT NULL REFERENCES tickets(id) ON DELETE CASCADE,
		phase_id   INTEGER NOT NULL,
		title      TEXT NOT NULL,
		completed  INTEGER NOT NULL DEFAULT 0,
		deadline   TEXT,
		source     TEXT NOT NULL DEFAULT 'manual'
		           CHECK(source IN ('manual','autofill','ai_plan')),
		position   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_ticket ON tasks(ticket_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_deadline ON tasks(deadline)`,

	`CREATE TABLE IF NOT EXISTS time_entries (
		id         TEXT PRIMARY KEY,
		ticket_id  TEXT NOT NULL REFERENCES tickets(id) ON DELETE CASCADE,
		note       TEXT NOT NULL DEFAULT '',
		started_at TEXT NOT NULL,
		stopped_at TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_time_entries_ticket ON time_entries(ticket_id)`,
	// At most one running timer.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_time_entries_running
		ON time_entries((stopped_at IS NULL)) WHERE stopped_at IS NULL`,

	`CREATE TABLE IF NOT EXISTS todos (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		done       INTEGER NOT NULL DEFAULT 0,
		position   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_todos_position ON todos(position)`,
}
