package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrTimerRunning       = errors.New("a timer is already running")
	ErrNoActiveTimer      = errors.New("no timer is running")

	// ErrValidation marks input rejected before any state changed.
	ErrValidation = errors.New("validation failed")
)

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
