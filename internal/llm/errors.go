package llm

import "errors"

var (
	// ErrUnavailable indicates the model server is unreachable or the
	// feature is disabled.
	ErrUnavailable = errors.New("llm server unavailable")

	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the response could not be decoded into the
	// expected structure.
	ErrInvalidOutput = errors.New("invalid llm output format")

	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
