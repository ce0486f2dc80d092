// Package client provides the resilient HTTP client every Websets API call
// flows through.
//
// A Client owns one rate limiter and one circuit breaker, shared by all
// in-flight requests. Each logical request acquires a rate-limit token,
// executes inside the circuit breaker, and retries retryable failures with
// exponential backoff. Callers receive either a normalized Response or a
// *resilience.APIError; raw transport errors never escape.
//
// The execution order for one logical call:
//
//	CircuitBreaker.Execute(
//	    for attempt := 0..retries:
//	        RateLimiter.WaitForToken
//	        Transport.Send
//	        on failure: classify, log, maybe back off and retry
//	)
//
// The breaker wraps the whole retry sequence, so it records one outcome per
// logical call and an open circuit rejects the call before any attempt is
// made.
package client
