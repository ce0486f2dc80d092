package resilience

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for resilience operations.
var (
	// ErrCircuitOpen is returned when the circuit breaker rejects a call
	// without invoking the operation.
	ErrCircuitOpen = errors.New("resilience: circuit breaker is open")
)

// HTTPError is the normalized failure shape the transport produces for a
// non-2xx response. Classify inspects it to map the status onto a Kind,
// and NewAPIError extracts a structured error body from it when present.
type HTTPError struct {
	Status int
	Body   []byte
	Header http.Header
}

// Error returns a short description including the HTTP status.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("http status %d: %s", e.Status, http.StatusText(e.Status))
}
