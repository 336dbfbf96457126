package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/alexanderramin/scholia/internal/llm"
	"github.com/alexanderramin/scholia/internal/planner"
	"github.com/alexanderramin/scholia/internal/repository"
	"github.com/alexanderramin/scholia/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("ticket x: %w", repository.ErrNotFound), http.StatusNotFound},
		{service.ErrNoActiveTimer, http.StatusNotFound},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrEmailTaken, http.StatusConflict},
		{fmt.Errorf("%w on ticket t", service.ErrTimerRunning), http.StatusConflict},
		{fmt.Errorf("%w: title is required", service.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: json", errBadRequest), http.StatusBadRequest},
		{llm.ErrUnavailable, http.StatusServiceUnavailable},
		{llm.ErrTimeout, http.StatusGatewayTimeout},
		{llm.ErrInvalidOutput, http.StatusBadGateway},
		{llm.ErrRetryExhausted, http.StatusBadGateway},
		{fmt.Errorf("%w: \"x\"", planner.ErrUnknownTodo), http.StatusBadGateway},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
