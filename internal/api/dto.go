package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/alexanderramin/scholia/internal/progress"
	"github.com/alexanderramin/scholia/internal/service"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// Requests. Dates travel as YYYY-MM-DD strings and are converted field by
// field; unknown JSON fields are rejected.

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type phaseRequest struct {
	ID        int    `json:"id,omitempty"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type taskRequest struct {
	PhaseID  int    `json:"phase_id"`
	Title    string `json:"title"`
	Deadline string `json:"deadline,omitempty"`
}

type createTicketRequest struct {
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Priority       string         `json:"priority"`
	Deadline       string         `json:"deadline"`
	EstimatedHours float64        `json:"estimated_hours"`
	Phases         []phaseRequest `json:"phases"`
	Tasks          []taskRequest  `json:"tasks"`
}

// updateTicketRequest changes only the fields present. An empty deadline
// clears it.
type updateTicketRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Priority       *string  `json:"priority"`
	Status         *string  `json:"status"`
	Deadline       *string  `json:"deadline"`
	EstimatedHours *float64 `json:"estimated_hours"`
}

type phaseStateRequest struct {
	Completed *bool `json:"completed"`
}

type planRequest struct {
	Brief string `json:"brief"`
}

type startTimerRequest struct {
	TicketID string `json:"ticket_id"`
	Note     string `json:"note"`
}

type todoRequest struct {
	Title string `json:"title"`
}

// decode reads a single JSON object, rejecting unknown fields and
// trailing data.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON body", errBadRequest)
	}
	return nil
}

func parseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", errBadRequest, field)
	}
	return t, nil
}

func parseOptionalDate(field, s string) (*time.Time, error) {
	d, err := domain.ParseOptionalDate(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", errBadRequest, field)
	}
	return d, nil
}

func (req phaseRequest) toDomain() (domain.Phase, error) {
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return domain.Phase{}, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return domain.Phase{}, err
	}
	return domain.Phase{ID: req.ID, Name: req.Name, StartDate: start, EndDate: end}, nil
}

func (req taskRequest) toDomain() (domain.Task, error) {
	deadline, err := parseOptionalDate("deadline", req.Deadline)
	if err != nil {
		return domain.Task{}, err
	}
	return domain.Task{PhaseID: req.PhaseID, Title: req.Title, Deadline: deadline}, nil
}

func (req createTicketRequest) toDomain() (*domain.Ticket, error) {
	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	deadline, err := parseOptionalDate("deadline", req.Deadline)
	if err != nil {
		return nil, err
	}
	t := &domain.Ticket{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       priority,
		Deadline:       deadline,
		EstimatedHours: req.EstimatedHours,
	}
	for _, pr := range req.Phases {
		p, err := pr.toDomain()
		if err != nil {
			return nil, err
		}
		if p.ID == 0 {
			p.ID = t.NextPhaseID()
		}
		t.Phases = append(t.Phases, p)
	}
	for _, tr := range req.Tasks {
		task, err := tr.toDomain()
		if err != nil {
			return nil, err
		}
		t.Tasks = append(t.Tasks, task)
	}
	return t, nil
}

func (req updateTicketRequest) apply(t *domain.Ticket) error {
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Priority != nil {
		p, err := domain.ParsePriority(*req.Priority)
		if err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
		t.Priority = p
	}
	if req.Status != nil {
		st := domain.TicketStatus(strings.ToLower(*req.Status))
		if !domain.ValidStatuses[st] {
			return fmt.Errorf("%w: status %q must be planned, in-progress or completed", errBadRequest, *req.Status)
		}
		t.Status = st
	}
	if req.Deadline != nil {
		d, err := parseOptionalDate("deadline", *req.Deadline)
		if err != nil {
			return err
		}
		t.Deadline = d
	}
	if req.EstimatedHours != nil {
		t.EstimatedHours = *req.EstimatedHours
	}
	return nil
}

// Responses.

type phaseResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Completed bool   `json:"completed"`
}

type taskResponse struct {
	ID        string    `json:"id"`
	PhaseID   int       `json:"phase_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Deadline  *string   `json:"deadline"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

type ticketResponse struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Priority       string          `json:"priority"`
	Deadline       *string         `json:"deadline"`
	Status         string          `json:"status"`
	Progress       int             `json:"progress"`
	EstimatedHours float64         `json:"estimated_hours"`
	Phases         []phaseResponse `json:"phases"`
	Tasks          []taskResponse  `json:"tasks"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type toggleResponse struct {
	Ticket         ticketResponse `json:"ticket"`
	Task           taskResponse   `json:"task"`
	CompletedPhase []int          `json:"completed_phases"`
	ReopenedPhase  []int          `json:"reopened_phases"`
	AutoFilled     []taskResponse `json:"auto_filled"`
}

type focusItemResponse struct {
	TicketID    string       `json:"ticket_id"`
	TicketTitle string       `json:"ticket_title"`
	Priority    string       `json:"priority"`
	Reason      string       `json:"reason"`
	DueToday    bool         `json:"due_today"`
	Overdue     bool         `json:"overdue"`
	Task        taskResponse `json:"task"`
}

type planResponse struct {
	Ticket      ticketResponse `json:"ticket"`
	PhasesAdded int            `json:"phases_added"`
	TasksAdded  int            `json:"tasks_added"`
}

type timeEntryResponse struct {
	ID             string     `json:"id"`
	TicketID       string     `json:"ticket_id"`
	Note           string     `json:"note,omitempty"`
	StartedAt      time.Time  `json:"started_at"`
	StoppedAt      *time.Time `json:"stopped_at"`
	ElapsedSeconds int64      `json:"elapsed_seconds"`
}

type timeSummaryResponse struct {
	TicketID     string `json:"ticket_id"`
	Entries      int    `json:"entries"`
	TotalSeconds int64  `json:"total_seconds"`
}

type todoResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}

func formatRequiredDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}

func newTaskResponse(t domain.Task) taskResponse {
	return taskResponse{
		ID:        t.ID,
		PhaseID:   t.PhaseID,
		Title:     t.Title,
		Completed: t.Completed,
		Deadline:  formatDate(t.Deadline),
		Source:    string(t.Source),
		CreatedAt: t.CreatedAt,
	}
}

func newTaskResponses(tasks []domain.Task) []taskResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = newTaskResponse(t)
	}
	return out
}

func newTicketResponse(t *domain.Ticket) ticketResponse {
	phases := make([]phaseResponse, 0, len(t.Phases))
	for _, p := range t.SortedPhases() {
		phases = append(phases, phaseResponse{
			ID:        p.ID,
			Name:      p.Name,
			StartDate: formatRequiredDate(p.StartDate),
			EndDate:   formatRequiredDate(p.EndDate),
			Completed: p.Completed,
		})
	}
	return ticketResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Priority:       string(t.Priority),
		Deadline:       formatDate(t.Deadline),
		Status:         string(t.Status),
		Progress:       t.Progress,
		EstimatedHours: t.EstimatedHours,
		Phases:         phases,
		Tasks:          newTaskResponses(t.Tasks),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func newToggleResponse(o *service.ToggleOutcome) toggleResponse {
	return toggleResponse{
		Ticket:         newTicketResponse(o.Ticket),
		Task:           newTaskResponse(o.Task),
		CompletedPhase: nonNilInts(o.CompletedPhases),
		ReopenedPhase:  nonNilInts(o.ReopenedPhases),
		AutoFilled:     newTaskResponses(o.AutoFilled),
	}
}

func newFocusResponse(items []progress.FocusItem) []focusItemResponse {
	out := make([]focusItemResponse, len(items))
	for i, it := range items {
		out[i] = focusItemResponse{
			TicketID:    it.TicketID,
			TicketTitle: it.TicketTitle,
			Priority:    string(it.Priority),
			Reason:      string(it.Reason),
			DueToday:    it.DueToday,
			Overdue:     it.Overdue,
			Task:        newTaskResponse(it.Task),
		}
	}
	return out
}

func newTimeEntryResponse(e *domain.TimeEntry, now time.Time) timeEntryResponse {
	return timeEntryResponse{
		ID:             e.ID,
		TicketID:       e.TicketID,
		Note:           e.Note,
		StartedAt:      e.StartedAt,
		StoppedAt:      e.StoppedAt,
		ElapsedSeconds: int64(e.Elapsed(now).Seconds()),
	}
}

func newTodoResponses(todos []*domain.Todo) []todoResponse {
	out := make([]todoResponse, len(todos))
	for i, t := range todos {
		out[i] = newTodoResponse(t)
	}
	return out
}

func newTodoResponse(t *domain.Todo) todoResponse {
	return todoResponse{ID: t.ID, Title: t.Title, Done: t.Done, Position: t.Position, CreatedAt: t.CreatedAt}
}

func nonNilInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
