// Package config loads server configuration from the environment.
//
// All settings live under the WEBSETS_ prefix (WEBSETS_API_KEY,
// WEBSETS_RPS, ...). The loader owns validation of the numeric inputs -
// positivity, threshold bounds, delay ordering - so the resilience layer
// can trust the values it receives.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full server configuration.
type Config struct {
	// APIKey authenticates against the Websets API. Required.
	APIKey string

	// BaseURL is the API origin.
	BaseURL string

	// Timeout is the default per-attempt request timeout.
	Timeout time.Duration

	// RetryAttempts is the retry budget per logical call.
	RetryAttempts int

	// RetryDelay and MaxRetryDelay bound the backoff schedule.
	RetryDelay    time.Duration
	MaxRetryDelay time.Duration

	// RequestsPerSecond and Burst configure the token bucket.
	RequestsPerSecond float64
	Burst             float64

	// CircuitThreshold and CircuitTimeout configure the breaker.
	CircuitThreshold int
	CircuitTimeout   time.Duration

	// CacheTTL controls read-through caching; zero disables it.
	CacheTTL time.Duration

	// CacheMaxEntries bounds the in-memory store.
	CacheMaxEntries int

	// LogLevel is one of debug|info|warn|error.
	LogLevel string

	// TracingExporter and MetricsExporter are stdout|none.
	TracingExporter string
	MetricsExporter string
}

// Load reads configuration from WEBSETS_-prefixed environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WEBSETS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", "https://api.exa.ai")
	v.SetDefault("timeout_ms", 30000)
	v.SetDefault("retry_attempts", 3)
	v.SetDefault("retry_delay_ms", 1000)
	v.SetDefault("max_retry_delay_ms", 30000)
	v.SetDefault("rps", 5.0)
	v.SetDefault("burst", 0.0)
	v.SetDefault("cb_threshold", 5)
	v.SetDefault("cb_timeout_ms", 60000)
	v.SetDefault("cache_ttl_ms", 300000)
	v.SetDefault("cache_max_entries", 1024)
	v.SetDefault("log_level", "info")
	v.SetDefault("tracing_exporter", "none")
	v.SetDefault("metrics_exporter", "none")

	cfg := &Config{
		APIKey:            v.GetString("api_key"),
		BaseURL:           v.GetString("base_url"),
		Timeout:           time.Duration(v.GetInt64("timeout_ms")) * time.Millisecond,
		RetryAttempts:     v.GetInt("retry_attempts"),
		RetryDelay:        time.Duration(v.GetInt64("retry_delay_ms")) * time.Millisecond,
		MaxRetryDelay:     time.Duration(v.GetInt64("max_retry_delay_ms")) * time.Millisecond,
		RequestsPerSecond: v.GetFloat64("rps"),
		Burst:             v.GetFloat64("burst"),
		CircuitThreshold:  v.GetInt("cb_threshold"),
		CircuitTimeout:    time.Duration(v.GetInt64("cb_timeout_ms")) * time.Millisecond,
		CacheTTL:          time.Duration(v.GetInt64("cache_ttl_ms")) * time.Millisecond,
		CacheMaxEntries:   v.GetInt("cache_max_entries"),
		LogLevel:          v.GetString("log_level"),
		TracingExporter:   v.GetString("tracing_exporter"),
		MetricsExporter:   v.GetString("metrics_exporter"),
	}

	if cfg.Burst <= 0 {
		cfg.Burst = 2 * cfg.RequestsPerSecond
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the invariants the resilience layer relies on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.New("config: WEBSETS_API_KEY is required")
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("config: requests per second must be positive, got %v", c.RequestsPerSecond)
	}
	if c.Burst < c.RequestsPerSecond {
		return fmt.Errorf("config: burst %v must be at least the rate %v", c.Burst, c.RequestsPerSecond)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %v", c.Timeout)
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("config: retry attempts must be non-negative, got %d", c.RetryAttempts)
	}
	if c.RetryDelay <= 0 {
		return fmt.Errorf("config: retry delay must be positive, got %v", c.RetryDelay)
	}
	if c.MaxRetryDelay < c.RetryDelay {
		return fmt.Errorf("config: max retry delay %v must be at least retry delay %v", c.MaxRetryDelay, c.RetryDelay)
	}
	if c.CircuitThreshold < 1 {
		return fmt.Errorf("config: circuit threshold must be at least 1, got %d", c.CircuitThreshold)
	}
	if c.CircuitTimeout <= 0 {
		return fmt.Errorf("config: circuit timeout must be positive, got %v", c.CircuitTimeout)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("config: cache TTL must be non-negative, got %v", c.CacheTTL)
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	return nil
}
