// Package api serves the JSON HTTP interface over the service layer.
package api

import (
	"net/http"
	"time"

	"github.com/alexanderramin/scholia/internal/metrics"
	"github.com/alexanderramin/scholia/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Services groups the use cases the API exposes.
type Services struct {
	Tickets service.TicketService
	Focus   service.FocusService
	Timers  service.TimerService
	Auth    service.AuthService
	Plans   service.PlanService
	Todos   service.TodoService
}

type Server struct {
	svc     Services
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewServer wires the handlers. m may be nil, in which case no metrics are
// recorded and /metrics is not mounted.
func NewServer(svc Services, log *zap.Logger, m *metrics.Metrics) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, log: log, metrics: m, now: time.Now}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Post("/auth/register", s.register)
	r.Post("/auth/login", s.login)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Route("/tickets", func(r chi.Router) {
			r.Get("/", s.listTickets)
			r.Post("/", s.createTicket)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getTicket)
				r.Put("/", s.updateTicket)
				r.Delete("/", s.deleteTicket)

				r.Post("/phases", s.addPhase)
				r.Put("/phases/{phaseID}", s.setPhaseState)
				r.Delete("/phases/{phaseID}", s.deletePhase)

				r.Post("/tasks", s.addTask)
				r.Put("/tasks/{taskID}", s.updateTask)
				r.Delete("/tasks/{taskID}", s.deleteTask)
				r.Post("/tasks/{taskID}/toggle", s.toggleTask)

				r.Get("/relevant", s.relevantTasks)
				r.Post("/plan", s.generatePlan)
				r.Get("/time", s.timeSummary)
			})
		})

		r.Get("/focus", s.todaysFocus)

		r.Post("/timers/start", s.startTimer)
		r.Post("/timers/stop", s.stopTimer)
		r.Get("/timers/active", s.activeTimer)

		r.Get("/todos", s.listTodos)
		r.Post("/todos", s.createTodo)
		r.Post("/todos/prioritize", s.prioritizeTodos)
		r.Post("/todos/{id}/done", s.completeTodo)
		r.Delete("/todos/{id}", s.deleteTodo)
	})
	return r
}
