package resilience

import (
	"context"
	"errors"
	"net"
	"syscall"
	"testing"
	"time"
)

func TestClassify_HTTPStatuses(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{400, KindValidation},
		{401, KindAuthentication},
		{403, KindAuthorization},
		{404, KindNotFound},
		{422, KindValidation},
		{429, KindRateLimit},
		{500, KindServer},
		{502, KindServer},
		{503, KindServer},
	}
	for _, tt := range tests {
		err := &HTTPError{Status: tt.status}
		if got := Classify(err); got != tt.want {
			t.Errorf("Classify(status %d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestClassify_TransportErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"connection refused", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, KindNetwork},
		{"connection reset", &net.OpError{Op: "read", Err: syscall.ECONNRESET}, KindNetwork},
		{"dns failure", &net.DNSError{Err: "no such host", Name: "api.example.com"}, KindNetwork},
		{"deadline exceeded", context.DeadlineExceeded, KindTimeout},
		{"timeout in message", errors.New("request timeout after 30s"), KindTimeout},
		{"circuit open sentinel", ErrCircuitOpen, KindCircuitOpen},
		{"circuit mention", errors.New("rejected: circuit breaker tripped"), KindCircuitOpen},
		{"unknown error", errors.New("something odd"), KindNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldRetry_Partition(t *testing.T) {
	retryable := []Kind{KindRateLimit, KindServer, KindNetwork, KindTimeout}
	permanent := []Kind{KindAuthentication, KindAuthorization, KindValidation, KindNotFound, KindCircuitOpen}

	for _, k := range retryable {
		if !ShouldRetry(k) {
			t.Errorf("ShouldRetry(%v) = false, want true", k)
		}
	}
	for _, k := range permanent {
		if ShouldRetry(k) {
			t.Errorf("ShouldRetry(%v) = true, want false", k)
		}
	}
}

func TestTemporaryPermanent_DerivedFromShouldRetry(t *testing.T) {
	kinds := []Kind{
		KindNetwork, KindTimeout, KindAuthentication, KindAuthorization,
		KindNotFound, KindValidation, KindRateLimit, KindServer, KindCircuitOpen,
	}
	for _, k := range kinds {
		if IsTemporary(k) != ShouldRetry(k) {
			t.Errorf("IsTemporary(%v) disagrees with ShouldRetry", k)
		}
		if IsPermanent(k) == IsTemporary(k) {
			t.Errorf("IsPermanent(%v) must be the complement of IsTemporary", k)
		}
	}
}

func TestRetryDelay_Growth(t *testing.T) {
	base := time.Second
	max := 10 * time.Second

	var prev time.Duration
	for attempt := 0; attempt < 6; attempt++ {
		d := RetryDelay(attempt, KindServer, base, max)
		if d < prev {
			t.Errorf("delay decreased: attempt %d = %v, previous = %v", attempt, d, prev)
		}
		if d > max {
			t.Errorf("delay %v exceeds cap %v", d, max)
		}
		prev = d
	}

	if d := RetryDelay(10, KindServer, base, max); d != max {
		t.Errorf("delay at large attempt = %v, want capped at %v", d, max)
	}
}

func TestRetryDelay_RateLimitDoubled(t *testing.T) {
	base := time.Second
	max := time.Hour

	for attempt := 0; attempt < 5; attempt++ {
		rate := RetryDelay(attempt, KindRateLimit, base, max)
		other := RetryDelay(attempt, KindServer, base, max)
		if rate < other {
			t.Errorf("attempt %d: rate-limit delay %v < server delay %v", attempt, rate, other)
		}

		// Exactly 2 x the exponential term, no jitter.
		want := time.Duration(float64(base) * float64(int(1)<<attempt) * 2)
		if rate != want {
			t.Errorf("attempt %d: rate-limit delay = %v, want %v", attempt, rate, want)
		}
	}
}

func TestRetryDelay_JitterBounds(t *testing.T) {
	base := time.Second
	max := time.Hour

	// Jitter is additive, up to 10% of the exponential term.
	for i := 0; i < 50; i++ {
		d := RetryDelay(2, KindNetwork, base, max)
		lo := 4 * time.Second
		hi := lo + lo/10
		if d < lo || d > hi {
			t.Fatalf("delay = %v, want within [%v, %v]", d, lo, hi)
		}
	}
}

func TestKindStrings(t *testing.T) {
	if KindRateLimit.String() != "rate_limit" {
		t.Errorf("String() = %q", KindRateLimit.String())
	}
	if KindRateLimit.Code() != "RATE_LIMIT_EXCEEDED" {
		t.Errorf("Code() = %q", KindRateLimit.Code())
	}
	if Kind(99).String() != "unknown" || Kind(99).Code() != "UNKNOWN_ERROR" {
		t.Error("unrecognized kind must map to unknown")
	}
}
