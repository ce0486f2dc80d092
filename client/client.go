package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/websetkit/websets-mcp/observe"
	"github.com/websetkit/websets-mcp/resilience"
)

// Config configures a Client. Validation of the numeric inputs (positivity,
// RetryDelay <= MaxRetryDelay) is the config loader's job; the client
// applies defaults for zero values and otherwise trusts what it is given.
type Config struct {
	// APIKey is sent as the x-api-key header on every request.
	APIKey string

	// BaseURL is the API origin. Default: https://api.exa.ai
	BaseURL string

	// Timeout is the default per-attempt timeout. Default: 30s
	Timeout time.Duration

	// RetryAttempts is the default retry budget per logical call. Nil means
	// 3; an explicit zero disables retries. Default: 3
	RetryAttempts *int

	// RetryDelay is the base backoff delay. Default: 1s
	RetryDelay time.Duration

	// MaxRetryDelay caps the backoff delay. Default: 30s
	MaxRetryDelay time.Duration

	// RequestsPerSecond and Burst configure the shared token bucket.
	RequestsPerSecond float64
	Burst             float64

	// CircuitThreshold and CircuitTimeout configure the shared breaker.
	CircuitThreshold int
	CircuitTimeout   time.Duration

	// Logger receives one entry per attempt. Defaults to a disabled logger.
	Logger zerolog.Logger

	// Metrics receives pipeline instruments when non-nil.
	Metrics *observe.RequestMetrics

	// Tracer wraps each logical request in a span when non-nil.
	Tracer trace.Tracer

	// Transport overrides the net/http transport, for tests.
	Transport Transport
}

// Opts describes one logical request.
type Opts struct {
	Method  string
	Path    string
	Body    any
	Params  url.Values
	Headers http.Header

	// Timeout overrides the client default for this call when positive.
	Timeout time.Duration

	// Retries overrides the client retry budget when non-nil.
	Retries *int
}

// Client is the resilient Websets API client. All in-flight requests share
// its rate limiter and circuit breaker; both live as long as the client.
type Client struct {
	apiKey  string
	baseURL string

	mu            sync.RWMutex
	timeout       time.Duration
	retryAttempts int
	retryDelay    time.Duration
	maxRetryDelay time.Duration

	limiter *resilience.RateLimiter
	breaker *resilience.CircuitBreaker

	transport Transport
	logger    zerolog.Logger
	metrics   *observe.RequestMetrics
	tracer    trace.Tracer
}

// New creates a Client.
func New(cfg Config) *Client {
	// Apply defaults
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.exa.ai"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	retryAttempts := 3
	if cfg.RetryAttempts != nil && *cfg.RetryAttempts >= 0 {
		retryAttempts = *cfg.RetryAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.MaxRetryDelay <= 0 {
		cfg.MaxRetryDelay = 30 * time.Second
	}
	if cfg.Transport == nil {
		cfg.Transport = newHTTPTransport()
	}
	if cfg.Tracer == nil {
		cfg.Tracer = tracenoop.NewTracerProvider().Tracer("websets-client")
	}

	c := &Client{
		apiKey:        cfg.APIKey,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		timeout:       cfg.Timeout,
		retryAttempts: retryAttempts,
		retryDelay:    cfg.RetryDelay,
		maxRetryDelay: cfg.MaxRetryDelay,
		transport:     cfg.Transport,
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
		tracer:        cfg.Tracer,
	}

	c.limiter = resilience.NewRateLimiter(resilience.RateLimiterConfig{
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
	})
	c.breaker = resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		FailureThreshold: cfg.CircuitThreshold,
		Timeout:          cfg.CircuitTimeout,
		OnStateChange:    c.onCircuitStateChange,
	})

	return c
}

func (c *Client) onCircuitStateChange(from, to resilience.State) {
	c.logger.Warn().
		Stringer("from", from).
		Stringer("to", to).
		Msg("circuit breaker state changed")
	if c.metrics != nil {
		c.metrics.SetCircuitState(int64(to))
	}
}

// Request executes one logical API call through the resilience pipeline.
//
// The whole retry loop runs inside the circuit breaker, so an open circuit
// fails the call with a circuit-open APIError before any transport attempt,
// and the breaker records one outcome per logical call. Retryable failures
// are retried up to the effective retry budget with exponential backoff;
// permanent failures surface immediately. On failure the returned error is
// always a *resilience.APIError.
func (c *Client) Request(ctx context.Context, opts Opts) (*Response, error) {
	c.mu.RLock()
	retries := c.retryAttempts
	timeout := c.timeout
	c.mu.RUnlock()
	if opts.Retries != nil && *opts.Retries >= 0 {
		retries = *opts.Retries
	}
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	logger := c.logger.With().
		Str("request_id", uuid.NewString()).
		Str("method", opts.Method).
		Str("path", opts.Path).
		Logger()

	ctx, span := c.tracer.Start(ctx, "websets.request", trace.WithAttributes(
		attribute.String("http.method", opts.Method),
		attribute.String("url.path", opts.Path),
	))
	defer span.End()

	start := time.Now()
	resp, err := c.execute(ctx, logger, opts, timeout, retries)
	c.record(ctx, opts.Method, start, err)

	if err != nil {
		apiErr := resilience.NewAPIError(err)
		span.SetAttributes(attribute.String("error.kind", apiErr.Kind.String()))
		return nil, apiErr
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.Status))
	return resp, nil
}

// execute runs the breaker-wrapped retry loop and returns the transport
// outcome.
func (c *Client) execute(ctx context.Context, logger zerolog.Logger, opts Opts, timeout time.Duration, retries int) (*Response, error) {
	var resp *Response

	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		var lastErr error

		for attempt := 0; attempt <= retries; attempt++ {
			if err := c.limiter.WaitForToken(ctx); err != nil {
				return err
			}

			logger.Debug().Int("attempt", attempt).Msg("issuing request")

			r, err := c.attempt(ctx, opts, timeout)
			if err == nil {
				resp = r
				return nil
			}

			apiErr := resilience.NewAPIError(err)
			lastErr = apiErr

			// Log before the retry decision; logging never depends on it.
			resilience.LogError(logger, apiErr, attempt)

			if !apiErr.Retryable || attempt >= retries {
				return apiErr
			}

			delay := resilience.RetryDelay(attempt, apiErr.Kind, c.retryDelay, c.maxRetryDelay)
			logger.Debug().
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("retrying after backoff")
			if c.metrics != nil {
				c.metrics.RecordRetry(ctx, apiErr.Kind.String())
			}

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		// Unreachable while the loop returns on exhaustion; kept so the
		// closure can never report success without a response.
		return lastErr
	})

	if err != nil {
		return nil, err
	}
	return resp, nil
}

// attempt issues a single transport call with its own deadline.
func (c *Client) attempt(ctx context.Context, opts Opts, timeout time.Duration) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	target := c.baseURL + opts.Path
	if len(opts.Params) > 0 {
		target += "?" + opts.Params.Encode()
	}

	var body []byte
	if opts.Body != nil {
		var err error
		body, err = json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("client: encode request body: %w", err)
		}
	}

	headers := make(http.Header)
	headers.Set("x-api-key", c.apiKey)
	headers.Set("Accept", "application/json")
	if len(body) > 0 {
		headers.Set("Content-Type", "application/json")
	}
	for k, vals := range opts.Headers {
		for _, v := range vals {
			headers.Add(k, v)
		}
	}

	return c.transport.Send(ctx, opts.Method, target, body, headers)
}

func (c *Client) record(ctx context.Context, method string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	outcome, kind := "success", ""
	if err != nil {
		outcome = "failure"
		kind = resilience.Classify(err).String()
	}
	c.metrics.RecordRequest(ctx, method, outcome, kind, time.Since(start))
}

// GetJSON issues a GET and decodes the response body into out.
func (c *Client) GetJSON(ctx context.Context, path string, params url.Values, out any) error {
	return c.doJSON(ctx, Opts{Method: http.MethodGet, Path: path, Params: params}, out)
}

// PostJSON issues a POST with a JSON body and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, Opts{Method: http.MethodPost, Path: path, Body: body}, out)
}

// PatchJSON issues a PATCH with a JSON body and decodes the response into out.
func (c *Client) PatchJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, Opts{Method: http.MethodPatch, Path: path, Body: body}, out)
}

// DeleteJSON issues a DELETE and decodes the response into out when non-nil.
func (c *Client) DeleteJSON(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, Opts{Method: http.MethodDelete, Path: path}, out)
}

func (c *Client) doJSON(ctx context.Context, opts Opts, out any) error {
	resp, err := c.Request(ctx, opts)
	if err != nil {
		return err
	}
	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

// Stats is the observability snapshot of the shared resilience state.
type Stats struct {
	RateLimiter resilience.RateLimiterSnapshot
	Circuit     resilience.CircuitBreakerSnapshot
}

// Stats returns a snapshot of the rate limiter and circuit breaker.
func (c *Client) Stats() Stats {
	return Stats{
		RateLimiter: c.limiter.Snapshot(),
		Circuit:     c.breaker.Snapshot(),
	}
}

// ResetResilience clears the rate limiter and circuit breaker.
func (c *Client) ResetResilience() {
	c.limiter.Reset()
	c.breaker.Reset()
}

// ConfigUpdate is a partial runtime configuration update. Zero fields keep
// their current values.
type ConfigUpdate struct {
	RequestsPerSecond float64
	Burst             float64
	RetryAttempts     *int
	Timeout           time.Duration
}

// UpdateConfig applies a partial update. Updates may race with in-flight
// calls; the limiter always resets cleanly so token math is never computed
// under a half-applied rate.
func (c *Client) UpdateConfig(u ConfigUpdate) {
	if u.RequestsPerSecond > 0 || u.Burst > 0 {
		c.limiter.UpdateOptions(resilience.RateLimiterConfig{
			RequestsPerSecond: u.RequestsPerSecond,
			Burst:             u.Burst,
		})
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if u.RetryAttempts != nil && *u.RetryAttempts >= 0 {
		c.retryAttempts = *u.RetryAttempts
	}
	if u.Timeout > 0 {
		c.timeout = u.Timeout
	}
}

// IsCircuitOpen reports whether err is the circuit-open rejection.
func IsCircuitOpen(err error) bool {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return true
	}
	var apiErr *resilience.APIError
	return errors.As(err, &apiErr) && apiErr.Kind == resilience.KindCircuitOpen
}
