package domain

import "time"

// Todo is a free-standing checklist entry outside any ticket.
type Todo struct {
	ID        string
	Title     string
	Done      bool
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
