package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func phaseIDParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "phaseID")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: phase id %q must be a positive integer", errBadRequest, raw)
	}
	return id, nil
}

// Auth

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := s.svc.Auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{ID: u.ID, Email: u.Email})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	token, err := s.svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// Tickets

func (s *Server) listTickets(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Tickets.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]ticketResponse, len(list))
	for i, t := range list {
		out[i] = newTicketResponse(t)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createTicket(w http.ResponseWriter, r *http.Request) {
	var req createTicketRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := req.toDomain()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Tickets.Create(r.Context(), t); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTicketResponse(t))
}

func (s *Server) getTicket(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Tickets.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTicketResponse(t))
}

func (s *Server) updateTicket(w http.ResponseWriter, r *http.Request) {
	var req updateTicketRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.svc.Tickets.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.apply(t); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Tickets.Update(r.Context(), t); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTicketResponse(t))
}

func (s *Server) deleteTicket(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Tickets.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Phases

func (s *Server) addPhase(w http.ResponseWriter, r *http.Request) {
	var req phaseRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := req.toDomain()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.svc.Tickets.AddPhase(r.Context(), id, &p); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondTicket(w, r, id, http.StatusCreated)
}

func (s *Server) setPhaseState(w http.ResponseWriter, r *http.Request) {
	phaseID, err := phaseIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req phaseStateRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Completed == nil {
		s.writeError(w, r, fmt.Errorf("%w: completed is required", errBadRequest))
		return
	}
	t, err := s.svc.Tickets.SetPhaseCompleted(r.Context(), chi.URLParam(r, "id"), phaseID, *req.Completed)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTicketResponse(t))
}

func (s *Server) deletePhase(w http.ResponseWriter, r *http.Request) {
	phaseID, err := phaseIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.svc.Tickets.DeletePhase(r.Context(), chi.URLParam(r, "id"), phaseID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTicketResponse(t))
}

// Tasks

func (s *Server) addTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	task, err := req.toDomain()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.svc.Tickets.AddTask(r.Context(), chi.URLParam(r, "id"), &task)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTicketResponse(t))
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	task, err := req.toDomain()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	task.ID = chi.URLParam(r, "taskID")
	t, err := s.svc.Tickets.UpdateTask(r.Context(), chi.URLParam(r, "id"), task)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTicketResponse(t))
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Tickets.DeleteTask(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "taskID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTicketResponse(t))
}

func (s *Server) toggleTask(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.Tickets.ToggleTask(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "taskID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newToggleResponse(out))
}

// Focus

func (s *Server) relevantTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.svc.Focus.RelevantTasks(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTaskResponses(tasks))
}

func (s *Server) todaysFocus(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Focus.TodaysFocus(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newFocusResponse(items))
}

// Plans

func (s *Server) generatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.svc.Plans.Generate(r.Context(), chi.URLParam(r, "id"), req.Brief)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, planResponse{
		Ticket:      newTicketResponse(res.Ticket),
		PhasesAdded: res.PhasesAdded,
		TasksAdded:  res.TasksAdded,
	})
}

// Timers

func (s *Server) startTimer(w http.ResponseWriter, r *http.Request) {
	var req startTimerRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.TicketID == "" {
		s.writeError(w, r, fmt.Errorf("%w: ticket_id is required", errBadRequest))
		return
	}
	e, err := s.svc.Timers.Start(r.Context(), req.TicketID, req.Note)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTimeEntryResponse(e, s.now()))
}

func (s *Server) stopTimer(w http.ResponseWriter, r *http.Request) {
	e, err := s.svc.Timers.Stop(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTimeEntryResponse(e, s.now()))
}

func (s *Server) activeTimer(w http.ResponseWriter, r *http.Request) {
	e, err := s.svc.Timers.Active(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTimeEntryResponse(e, s.now()))
}

func (s *Server) timeSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.Timers.Summary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, timeSummaryResponse{
		TicketID:     sum.TicketID,
		Entries:      sum.Entries,
		TotalSeconds: int64(sum.Total.Seconds()),
	})
}

// Todos

func (s *Server) listTodos(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Todos.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTodoResponses(list))
}

func (s *Server) createTodo(w http.ResponseWriter, r *http.Request) {
	var req todoRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.svc.Todos.Create(r.Context(), req.Title)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTodoResponse(t))
}

func (s *Server) completeTodo(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Todos.Complete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTodoResponse(t))
}

func (s *Server) deleteTodo(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Todos.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) prioritizeTodos(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Todos.Prioritize(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTodoResponses(list))
}

func (s *Server) respondTicket(w http.ResponseWriter, r *http.Request, id string, status int) {
	t, err := s.svc.Tickets.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, status, newTicketResponse(t))
}
