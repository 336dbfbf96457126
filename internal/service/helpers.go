package service

import (
	"strings"
	"time"

	"github.com/alexanderramin/scholia/internal/domain"
)

func utcNow() time.Time {
	return time.Now().UTC()
}

// localNow keeps the local zone so calendar-day decisions follow the
// user's day. Stored timestamps use utcNow.
func localNow() time.Time {
	return time.Now()
}

func validateTicket(t *domain.Ticket) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return validationErr("title is required")
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if !domain.ValidPriorities[t.Priority] {
		return validationErr("unknown priority %q", t.Priority)
	}
	if t.Status == "" {
		t.Status = domain.StatusPlanned
	}
	if !domain.ValidStatuses[t.Status] {
		return validationErr("unknown status %q", t.Status)
	}
	if t.Progress < 0 || t.Progress > 100 {
		return validationErr("progress %d outside 0..100", t.Progress)
	}
	if t.EstimatedHours < 0 {
		return validationErr("estimated hours must not be negative")
	}
	return nil
}

func validatePhase(p *domain.Phase) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return validationErr("phase name is required")
	}
	if p.ID < 0 {
		return validationErr("phase id must be positive")
	}
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate) {
		return validationErr("phase %q ends before it starts", p.Name)
	}
	return nil
}

// validateTask checks the task against the ticket it will live in.
func validateTask(t *domain.Task, ticket domain.Ticket) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return validationErr("task title is required")
	}
	if _, ok := ticket.Phase(t.PhaseID); !ok {
		return validationErr("phase %d does not exist on ticket %s", t.PhaseID, ticket.ID)
	}
	return nil
}

func removeTask(tasks []domain.Task, id string) []domain.Task {
	out := tasks[:0:0]
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
