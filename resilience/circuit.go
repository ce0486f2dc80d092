package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means the circuit is operating normally.
	StateClosed State = iota
	// StateOpen means the circuit is rejecting all requests.
	StateOpen
	// StateHalfOpen means the circuit is probing whether the service recovered.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker.
type CircuitBreakerConfig struct {
	// FailureThreshold is the failure count that opens the circuit.
	// Default: 5
	FailureThreshold int

	// Timeout is how long the circuit stays open before a half-open probe.
	// Default: 60 seconds
	Timeout time.Duration

	// MonitoringPeriod is accepted for configuration parity but does not
	// influence transitions.
	MonitoringPeriod time.Duration

	// OnStateChange is called when the circuit state changes.
	OnStateChange func(from, to State)
}

// CircuitBreaker rejects calls after repeated failures so a struggling
// upstream gets breathing room instead of a retry storm.
//
// Transitions: Closed→Open once failures reach the threshold, Open→HalfOpen
// after Timeout elapses since the last failure, HalfOpen→Closed on a
// successful probe, HalfOpen→Open on a failed one.
//
// Successes in the closed state do not clear the failure count directly;
// instead, once successes reach the failure threshold both counters reset.
// Accumulated failures are therefore forgiven after a run of successes
// without the circuit ever opening. This decay rule changes how quickly the
// circuit trips under mixed traffic, so it is load-bearing behavior.
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu          sync.Mutex
	state       State
	failures    int
	successes   int
	lastFailure time.Time
}

// NewCircuitBreaker creates a circuit breaker in the closed state.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	// Apply defaults
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}

	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
	}
}

// Execute runs the operation through the circuit breaker.
//
// When the circuit is open and the timeout has not elapsed, Execute returns
// ErrCircuitOpen without invoking op. When the timeout has elapsed the
// circuit moves to half-open and op runs as a probe. Any error from op is
// returned unchanged after the breaker records the outcome.
//
// Caller cancellation says nothing about upstream health, so a
// context.Canceled outcome is not recorded as success or failure.
func (cb *CircuitBreaker) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := cb.beforeRequest(); err != nil {
		return err
	}

	err := op(ctx)
	if errors.Is(err, context.Canceled) {
		return err
	}
	cb.afterRequest(err)
	return err
}

// State returns the current circuit state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Snapshot returns a read-only view of the breaker state and counters.
func (cb *CircuitBreaker) Snapshot() CircuitBreakerSnapshot {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return CircuitBreakerSnapshot{
		State:       cb.state,
		Failures:    cb.failures,
		Successes:   cb.successes,
		LastFailure: cb.lastFailure,
	}
}

// Reset forces the breaker closed and zeroes all counters.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	oldState := cb.state
	cb.state = StateClosed
	cb.failures = 0
	cb.successes = 0

	cb.notify(oldState, StateClosed)
}

func (cb *CircuitBreaker) beforeRequest() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if time.Since(cb.lastFailure) < cb.config.Timeout {
			return ErrCircuitOpen
		}
		cb.state = StateHalfOpen
		cb.notify(StateOpen, StateHalfOpen)
	}
	return nil
}

func (cb *CircuitBreaker) afterRequest(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	oldState := cb.state

	if err == nil {
		cb.successes++
		if cb.state == StateHalfOpen {
			cb.state = StateClosed
			cb.failures = 0
		}
		// Decay: enough successes forgive accumulated failures.
		if cb.successes >= cb.config.FailureThreshold {
			cb.failures = 0
			cb.successes = 0
		}
	} else {
		cb.failures++
		cb.lastFailure = time.Now()
		if cb.state == StateHalfOpen {
			cb.state = StateOpen
		} else if cb.failures >= cb.config.FailureThreshold {
			cb.state = StateOpen
		}
	}

	cb.notify(oldState, cb.state)
}

func (cb *CircuitBreaker) notify(from, to State) {
	if from != to && cb.config.OnStateChange != nil {
		cb.config.OnStateChange(from, to)
	}
}

// CircuitBreakerSnapshot contains circuit breaker statistics.
type CircuitBreakerSnapshot struct {
	State       State
	Failures    int
	Successes   int
	LastFailure time.Time
}
