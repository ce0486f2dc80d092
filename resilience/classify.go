package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net"
	"strings"
	"syscall"
	"time"
)

// Kind is the classified category of a request failure.
type Kind int

const (
	// KindNetwork covers connection-level transport failures.
	KindNetwork Kind = iota
	// KindTimeout covers transport timeouts and deadline expiry.
	KindTimeout
	// KindAuthentication maps HTTP 401.
	KindAuthentication
	// KindAuthorization maps HTTP 403.
	KindAuthorization
	// KindNotFound maps HTTP 404.
	KindNotFound
	// KindValidation maps HTTP 400 and 422.
	KindValidation
	// KindRateLimit maps HTTP 429.
	KindRateLimit
	// KindServer maps HTTP 5xx.
	KindServer
	// KindCircuitOpen marks calls rejected by the circuit breaker.
	KindCircuitOpen
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindRateLimit:
		return "rate_limit"
	case KindServer:
		return "server"
	case KindCircuitOpen:
		return "circuit_open"
	default:
		return "unknown"
	}
}

// Code returns the upper-case error code used when a response carries none.
func (k Kind) Code() string {
	switch k {
	case KindNetwork:
		return "NETWORK_ERROR"
	case KindTimeout:
		return "TIMEOUT_ERROR"
	case KindAuthentication:
		return "AUTHENTICATION_ERROR"
	case KindAuthorization:
		return "AUTHORIZATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindRateLimit:
		return "RATE_LIMIT_EXCEEDED"
	case KindServer:
		return "SERVER_ERROR"
	case KindCircuitOpen:
		return "CIRCUIT_BREAKER_OPEN"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Classify maps a raw failure onto a Kind. Matching precedence:
// connection-level failures, then timeouts, then HTTP status, then circuit
// rejection, with network as the fallback.
func Classify(err error) Kind {
	if err == nil {
		return KindNetwork
	}

	// Connection refused / reset / unresolved host.
	var dnsErr *net.DNSError
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.As(err, &dnsErr) {
		return KindNetwork
	}

	// Transport timeout or deadline expiry.
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) ||
		strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return KindTimeout
	}

	// HTTP status.
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.Status == 401:
			return KindAuthentication
		case httpErr.Status == 403:
			return KindAuthorization
		case httpErr.Status == 404:
			return KindNotFound
		case httpErr.Status == 400 || httpErr.Status == 422:
			return KindValidation
		case httpErr.Status == 429:
			return KindRateLimit
		case httpErr.Status >= 500:
			return KindServer
		}
	}

	if errors.Is(err, ErrCircuitOpen) ||
		strings.Contains(strings.ToLower(err.Error()), "circuit breaker") {
		return KindCircuitOpen
	}

	return KindNetwork
}

// retryableKinds is the single source of truth for the retryable partition.
// ShouldRetry, IsTemporary and IsPermanent all derive from it.
var retryableKinds = map[Kind]bool{
	KindRateLimit: true,
	KindServer:    true,
	KindNetwork:   true,
	KindTimeout:   true,
}

// ShouldRetry reports whether a failure of the given kind is worth retrying.
func ShouldRetry(kind Kind) bool {
	return retryableKinds[kind]
}

// IsTemporary reports whether the kind describes a transient condition.
func IsTemporary(kind Kind) bool {
	return ShouldRetry(kind)
}

// IsPermanent reports whether the kind describes a permanent condition.
func IsPermanent(kind Kind) bool {
	return !ShouldRetry(kind)
}

// RetryDelay computes the backoff before retry number attempt (0-indexed).
//
// Rate-limit failures get double the exponential delay with no jitter,
// since recovery from throttling needs longer waits than transient faults.
// All other kinds get up to 10% additive jitter to spread retry storms.
// The result is capped at maxDelay.
func RetryDelay(attempt int, kind Kind, baseDelay, maxDelay time.Duration) time.Duration {
	exponential := float64(baseDelay) * math.Pow(2, float64(attempt))

	var delay time.Duration
	if kind == KindRateLimit {
		delay = time.Duration(exponential * 2)
	} else {
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		jitter := rand.Float64() * 0.1 * exponential
		delay = time.Duration(exponential + jitter)
	}

	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}
