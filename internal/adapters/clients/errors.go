// Package clients provides instrumented HTTP clients for downstream services.
package clients

import (
	"errors"
	"fmt"
)

// Client errors are infrastructure failures. Callers translate them into
// domain errors at the anti-corruption layer.
var (
	// ErrCircuitOpen is returned without contacting the downstream while
	// the circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last attempt's error once every
	// attempt has failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

// StatusError records a 5xx response that exhausted the retry budget.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error: %d", e.StatusCode)
}
