// Package resilience implements the failure-handling layer that every
// Websets API call flows through.
//
// The package provides three cooperating pieces:
//
//   - RateLimiter: a token-bucket limiter with continuous refill that caps
//     the outbound request rate. Callers either poll with Acquire or block
//     with WaitForToken until a token is available.
//
//   - CircuitBreaker: opens after a threshold of failures, probes with a
//     half-open state after a timeout, and closes again on a successful
//     probe.
//
//   - Error classification: Classify maps transport and HTTP failures onto
//     a small set of Kinds, ShouldRetry partitions those kinds into
//     retryable and permanent, and RetryDelay computes exponential backoff
//     with jitter (doubled for rate-limit responses).
//
// The pieces are composed by the client package: each request acquires a
// rate-limit token, executes inside the circuit breaker, and consults the
// classifier on failure to decide whether and when to retry.
//
//	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{
//	    RequestsPerSecond: 5,
//	})
//	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
//	    FailureThreshold: 5,
//	    Timeout:          time.Minute,
//	})
//
//	err := cb.Execute(ctx, func(ctx context.Context) error {
//	    if err := rl.WaitForToken(ctx); err != nil {
//	        return err
//	    }
//	    return callAPI(ctx)
//	})
package resilience
