package domain

import "time"

// TimeEntry is one stopwatch run against a ticket. StoppedAt is nil while
// the timer is running.
type TimeEntry struct {
	ID        string
	TicketID  string
	Note      string
	StartedAt time.Time
	StoppedAt *time.Time
}

// Running reports whether the entry has not been stopped.
func (e TimeEntry) Running() bool {
	return e.StoppedAt == nil
}

// Elapsed returns the tracked duration, measured up to now for a running entry.
func (e TimeEntry) Elapsed(now time.Time) time.Duration {
	end := now
	if e.StoppedAt != nil {
		end = *e.StoppedAt
	}
	if end.Before(e.StartedAt) {
		return 0
	}
	return end.Sub(e.StartedAt)
}

// TimeSummary aggregates tracked time for one ticket.
type TimeSummary struct {
	TicketID string
	Entries  int
	Total    time.Duration
}
