package resilience

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNewRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{})

	snap := rl.Snapshot()
	if snap.RequestsPerSecond != 5 {
		t.Errorf("RequestsPerSecond = %v, want 5", snap.RequestsPerSecond)
	}
	if snap.Burst != 10 {
		t.Errorf("Burst = %v, want 10 (2 x rate)", snap.Burst)
	}
	if snap.AvailableTokens != 10 {
		t.Errorf("AvailableTokens = %d, want full bucket", snap.AvailableTokens)
	}
}

func TestRateLimiter_BurstThenExhaustion(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 10, Burst: 20})

	// 25 immediate acquires: exactly 20 succeed, then 5 fail.
	successes := 0
	for i := 0; i < 25; i++ {
		if rl.Acquire() {
			successes++
		}
	}
	if successes != 20 {
		t.Errorf("successes = %d, want 20", successes)
	}
}

func TestRateLimiter_TokensDecreaseByOne(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, Burst: 5})

	for want := 4; want >= 0; want-- {
		if !rl.Acquire() {
			t.Fatalf("Acquire() failed with %d tokens expected remaining", want+1)
		}
		if got := rl.AvailableTokens(); got != want {
			t.Errorf("AvailableTokens() = %d, want %d", got, want)
		}
	}
	if rl.Acquire() {
		t.Error("Acquire() succeeded on empty bucket")
	}
}

func TestRateLimiter_RefillBound(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 10, Burst: 5})

	// Drain the bucket.
	for rl.Acquire() {
	}

	time.Sleep(250 * time.Millisecond)

	// After 250ms at 10 rps, at most 2.5 tokens accumulated.
	if got := rl.AvailableTokens(); got < 1 || got > 2 {
		t.Errorf("AvailableTokens() after 250ms = %d, want 1..2", got)
	}
}

func TestRateLimiter_RefillCappedAtBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1000, Burst: 3})

	time.Sleep(50 * time.Millisecond)

	if got := rl.AvailableTokens(); got != 3 {
		t.Errorf("AvailableTokens() = %d, want capped at burst 3", got)
	}
}

func TestRateLimiter_WaitTime(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 10, Burst: 1})

	if wait := rl.WaitTime(); wait != 0 {
		t.Errorf("WaitTime() with token available = %v, want 0", wait)
	}

	if !rl.Acquire() {
		t.Fatal("Acquire() failed on full bucket")
	}

	// Empty bucket at 10 rps: next token is at most 100ms away.
	wait := rl.WaitTime()
	if wait <= 0 || wait > 100*time.Millisecond {
		t.Errorf("WaitTime() on empty bucket = %v, want (0, 100ms]", wait)
	}
}

func TestRateLimiter_WaitForToken(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 100, Burst: 1})
	if !rl.Acquire() {
		t.Fatal("Acquire() failed on full bucket")
	}

	start := time.Now()
	if err := rl.WaitForToken(context.Background()); err != nil {
		t.Fatalf("WaitForToken() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("WaitForToken() took %v, want well under a second at 100 rps", elapsed)
	}
}

func TestRateLimiter_WaitForToken_Cancelled(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, Burst: 1})
	if !rl.Acquire() {
		t.Fatal("Acquire() failed on full bucket")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := rl.WaitForToken(ctx); err != context.DeadlineExceeded {
		t.Errorf("WaitForToken() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestRateLimiter_Reset(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, Burst: 4})

	for rl.Acquire() {
	}
	rl.Reset()

	if got := rl.AvailableTokens(); got != 4 {
		t.Errorf("AvailableTokens() after Reset = %d, want 4", got)
	}
}

func TestRateLimiter_UpdateOptions(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, Burst: 2})
	for rl.Acquire() {
	}

	// Update always resets, and omitted burst derives 2 x rate.
	rl.UpdateOptions(RateLimiterConfig{RequestsPerSecond: 3})

	snap := rl.Snapshot()
	if snap.RequestsPerSecond != 3 {
		t.Errorf("RequestsPerSecond = %v, want 3", snap.RequestsPerSecond)
	}
	if snap.Burst != 6 {
		t.Errorf("Burst = %v, want 6", snap.Burst)
	}
	if snap.AvailableTokens != 6 {
		t.Errorf("AvailableTokens = %d, want full bucket after update", snap.AvailableTokens)
	}
}

func TestRateLimiter_ConcurrentAcquire(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, Burst: 50})

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Acquire() {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// At 1 rps the refill during the test is negligible; exactly the
	// burst worth of acquires may succeed.
	if successes != 50 {
		t.Errorf("concurrent successes = %d, want 50", successes)
	}
}
