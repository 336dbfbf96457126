// Package progress derives ticket progress, phase completion and the daily
// focus list from snapshots of tickets. Every function returns new values and
// leaves its inputs untouched.
package progress

import (
	"math"
	"time"

	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/google/uuid"
)

// AutoFillTarget is the number of tasks a freshly activated phase is
// topped up to.
const AutoFillTarget = 3

// autoFillSpacingDays separates the deadlines of generated tasks.
const autoFillSpacingDays = 3

type options struct {
	newID func() string
	now   func() time.Time
	today func() time.Time
}

// Option customises identifier and clock sources for generated tasks.
type Option func(*options)

// WithIDGenerator overrides the task ID source (uuid by default).
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

// WithClock overrides the creation timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(o *options) { o.now = fn }
}

// WithToday overrides the source of the current calendar day. Its date is
// read in the returned time's own location (local time by default).
func WithToday(fn func() time.Time) Option {
	return func(o *options) { o.today = fn }
}

func buildOptions(opts []Option) options {
	o := options{
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
		today: time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ToggleResult describes what a ToggleTask call changed.
type ToggleResult struct {
	Found           bool
	Task            domain.Task
	CompletedPhases []int // phases that went incomplete -> complete
	ReopenedPhases  []int // phases that went complete -> incomplete
	AutoFilled      []domain.Task
}

// ToggleTask flips a task's completion inside the snapshot and applies the
// phase cascade, auto-fill and progress rules. Unknown IDs return the
// snapshot unchanged with Found == false.
func ToggleTask(tickets []domain.Ticket, ticketID, taskID string, opts ...Option) ([]domain.Ticket, ToggleResult) {
	for i, t := range tickets {
		if t.ID != ticketID {
			continue
		}
		updated, res := ToggleTicketTask(t, taskID, opts...)
		if !res.Found {
			return tickets, res
		}
		out := make([]domain.Ticket, len(tickets))
		copy(out, tickets)
		out[i] = updated
		return out, res
	}
	return tickets, ToggleResult{}
}

// ToggleTicketTask is ToggleTask scoped to a single ticket.
func ToggleTicketTask(t domain.Ticket, taskID string, opts ...Option) (domain.Ticket, ToggleResult) {
	idx := -1
	for i, task := range t.Tasks {
		if task.ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return t, ToggleResult{}
	}

	o := buildOptions(opts)
	next := t.Clone()
	next.Tasks[idx].Completed = !next.Tasks[idx].Completed

	res := ToggleResult{Found: true, Task: next.Tasks[idx]}
	next, res.CompletedPhases, res.ReopenedPhases = CascadePhases(next)

	// Progress reflects the task set the user acted on; generated tasks
	// count from the next recompute onwards.
	next = ApplyProgress(next)

	for range res.CompletedPhases {
		var filled []domain.Task
		next, filled = autoFill(next, o)
		res.AutoFilled = append(res.AutoFilled, filled...)
	}
	return next, res
}

// CascadePhases recomputes every phase's completed flag: a phase is complete
// when it has at least one task and all of them are done.
func CascadePhases(t domain.Ticket) (domain.Ticket, []int, []int) {
	next := t.Clone()
	var completed, reopened []int
	for i, p := range next.Phases {
		var total, done int
		for _, task := range next.Tasks {
			if task.PhaseID != p.ID {
				continue
			}
			total++
			if task.Completed {
				done++
			}
		}
		now := total > 0 && done == total
		switch {
		case now && !p.Completed:
			completed = append(completed, p.ID)
		case !now && p.Completed:
			reopened = append(reopened, p.ID)
		}
		next.Phases[i].Completed = now
	}
	return next, completed, reopened
}

// Progress returns round(100*done/total). ok is false for a ticket without
// tasks, where progress is undefined.
func Progress(t domain.Ticket) (pct int, ok bool) {
	done, total := t.CompletedCount()
	if total == 0 {
		return 0, false
	}
	return int(math.Round(100 * float64(done) / float64(total))), true
}

// StatusFor maps a progress percentage to a ticket status.
func StatusFor(pct int) domain.TicketStatus {
	switch {
	case pct >= 100:
		return domain.StatusCompleted
	case pct <= 0:
		return domain.StatusPlanned
	default:
		return domain.StatusInProgress
	}
}

// ApplyProgress recomputes Progress and Status. A ticket without tasks keeps
// its previous values.
func ApplyProgress(t domain.Ticket) domain.Ticket {
	pct, ok := Progress(t)
	if !ok {
		return t
	}
	t.Progress = pct
	t.Status = StatusFor(pct)
	return t
}

// SetPhaseCompleted is the manual phase toggle. It does not touch tasks; the
// next ToggleTask recompute overrides it.
func SetPhaseCompleted(t domain.Ticket, phaseID int, done bool) (domain.Ticket, bool) {
	for i, p := range t.Phases {
		if p.ID == phaseID {
			next := t.Clone()
			next.Phases[i].Completed = done
			return next, true
		}
	}
	return t, false
}

// NextPhaseToFill returns the lowest-ID incomplete phase whose ID exceeds
// every completed phase's ID.
func NextPhaseToFill(t domain.Ticket) (domain.Phase, bool) {
	maxDone := math.MinInt
	for _, p := range t.Phases {
		if p.Completed && p.ID > maxDone {
			maxDone = p.ID
		}
	}
	for _, p := range t.SortedPhases() {
		if !p.Completed && p.ID > maxDone {
			return p, true
		}
	}
	return domain.Phase{}, false
}

func autoFill(t domain.Ticket, o options) (domain.Ticket, []domain.Task) {
	target, ok := NextPhaseToFill(t)
	if !ok {
		return t, nil
	}
	have := len(t.TasksInPhase(target.ID))
	need := AutoFillTarget - have
	if need <= 0 {
		return t, nil
	}

	titles := TemplateTitles(target.Name)
	created := o.now()
	start := target.StartDate
	if start.IsZero() {
		start = domain.DateOf(o.today())
	}

	generated := make([]domain.Task, 0, need)
	for i := 0; i < need && i < len(titles); i++ {
		due := start.AddDate(0, 0, (i+1)*autoFillSpacingDays)
		generated = append(generated, domain.Task{
			ID:        o.newID(),
			PhaseID:   target.ID,
			Title:     titles[i],
			Deadline:  &due,
			Source:    domain.SourceAutoFill,
			CreatedAt: created,
		})
	}
	next := t.Clone()
	next.Tasks = append(next.Tasks, generated...)
	return next, generated
}
