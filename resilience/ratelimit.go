package resilience

import (
	"context"
	"math"
	"sync"
	"time"
)

// RateLimiterConfig configures the token bucket.
type RateLimiterConfig struct {
	// RequestsPerSecond is the steady-state refill rate.
	// Default: 5
	RequestsPerSecond float64

	// Burst is the maximum number of tokens the bucket can hold.
	// Default: 2 × RequestsPerSecond
	Burst float64
}

// RateLimiter implements a token-bucket rate limiter with continuous refill.
//
// Tokens accumulate as elapsedSeconds × RequestsPerSecond, capped at Burst.
// Refill is continuous rather than tick-based, so fractional tokens are
// tracked and no rate is lost to tick boundaries. All state transitions run
// under a single mutex so check-then-decrement is atomic under concurrent
// callers.
type RateLimiter struct {
	mu         sync.Mutex
	rps        float64
	burst      float64
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter with a full bucket.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	// Apply defaults
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = 5
	}
	if config.Burst <= 0 {
		config.Burst = 2 * config.RequestsPerSecond
	}

	return &RateLimiter{
		rps:        config.RequestsPerSecond,
		burst:      config.Burst,
		tokens:     config.Burst,
		lastRefill: time.Now(),
	}
}

// Acquire refills the bucket and consumes one token if available.
// It never blocks; the return value reports whether a token was consumed.
func (rl *RateLimiter) Acquire() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refillLocked()

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

// WaitForToken blocks until a token is acquired or ctx is cancelled.
// The wait between attempts is the limiter's own estimate of when the next
// token arrives; there is no other bound on the total wait.
func (rl *RateLimiter) WaitForToken(ctx context.Context) error {
	for {
		if rl.Acquire() {
			return nil
		}

		wait := rl.WaitTime()
		if wait <= 0 {
			wait = time.Millisecond
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// AvailableTokens refills the bucket and returns the whole tokens available.
func (rl *RateLimiter) AvailableTokens() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refillLocked()
	return int(rl.tokens)
}

// WaitTime returns the estimated wait until one token is available,
// or zero if a token is available now.
func (rl *RateLimiter) WaitTime() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refillLocked()

	if rl.tokens >= 1 {
		return 0
	}
	ms := math.Ceil((1 - rl.tokens) * (1000 / rl.rps))
	return time.Duration(ms) * time.Millisecond
}

// Reset restores the bucket to full capacity and restarts the refill clock.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.resetLocked()
}

// UpdateOptions applies a partial configuration update and then resets the
// bucket. A zero RequestsPerSecond keeps the current rate; a zero Burst
// derives 2 × the effective rate. The reset is unconditional so a rate
// change never leaves token math computed under the old rate.
func (rl *RateLimiter) UpdateOptions(config RateLimiterConfig) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if config.RequestsPerSecond > 0 {
		rl.rps = config.RequestsPerSecond
	}
	if config.Burst > 0 {
		rl.burst = config.Burst
	} else {
		rl.burst = 2 * rl.rps
	}

	rl.resetLocked()
}

// Snapshot returns the limiter's current configuration and availability.
func (rl *RateLimiter) Snapshot() RateLimiterSnapshot {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refillLocked()

	snap := RateLimiterSnapshot{
		RequestsPerSecond: rl.rps,
		Burst:             rl.burst,
		AvailableTokens:   int(rl.tokens),
	}
	if rl.tokens < 1 {
		ms := math.Ceil((1 - rl.tokens) * (1000 / rl.rps))
		snap.WaitTime = time.Duration(ms) * time.Millisecond
	}
	return snap
}

// RateLimiterSnapshot is a read-only view of the limiter state.
type RateLimiterSnapshot struct {
	RequestsPerSecond float64
	Burst             float64
	AvailableTokens   int
	WaitTime          time.Duration
}

func (rl *RateLimiter) refillLocked() {
	now := time.Now()
	elapsed := now.Sub(rl.lastRefill)
	rl.lastRefill = now

	rl.tokens += elapsed.Seconds() * rl.rps
	if rl.tokens > rl.burst {
		rl.tokens = rl.burst
	}
}

func (rl *RateLimiter) resetLocked() {
	rl.tokens = rl.burst
	rl.lastRefill = time.Now()
}
