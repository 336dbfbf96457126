package api

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/scholia/internal/llm"
	"github.com/alexanderramin/scholia/internal/planner"
	"github.com/alexanderramin/scholia/internal/repository"
	"github.com/alexanderramin/scholia/internal/service"
	"go.uber.org/zap"
)

// errBadRequest marks malformed request bodies and path parameters.
var errBadRequest = errors.New("bad request")

// statusFor maps domain and service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrNoActiveTimer):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrTimerRunning):
		return http.StatusConflict
	case errors.Is(err, llm.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, llm.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, llm.ErrInvalidOutput), errors.Is(err, llm.ErrRetryExhausted), errors.Is(err, planner.ErrUnknownTodo):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
