// Command websets-mcp is an MCP server exposing the Websets and web-search
// APIs as tools over stdio.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/websetkit/websets-mcp/cache"
	"github.com/websetkit/websets-mcp/client"
	"github.com/websetkit/websets-mcp/config"
	"github.com/websetkit/websets-mcp/mcptools"
	"github.com/websetkit/websets-mcp/observe"
	"github.com/websetkit/websets-mcp/search"
	"github.com/websetkit/websets-mcp/secret"
	"github.com/websetkit/websets-mcp/websets"
)

const version = "1.0.0"

func main() {
	// Stdout carries the MCP transport; everything else goes to stderr.
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration invalid")
	}

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger = logger.Level(level)

	// Mask the API key anywhere it could surface in errors or logs.
	secret.AddSensitive(cfg.APIKey)

	obs, err := observe.New(observe.Config{
		ServiceName:     "websets-mcp",
		Version:         version,
		TracingExporter: cfg.TracingExporter,
		MetricsExporter: cfg.MetricsExporter,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("telemetry init failed")
	}

	apiClient := client.New(client.Config{
		APIKey:            cfg.APIKey,
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.Timeout,
		RetryAttempts:     &cfg.RetryAttempts,
		RetryDelay:        cfg.RetryDelay,
		MaxRetryDelay:     cfg.MaxRetryDelay,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		CircuitThreshold:  cfg.CircuitThreshold,
		CircuitTimeout:    cfg.CircuitTimeout,
		Logger:            logger.With().Str("component", "client").Logger(),
		Metrics:           obs.Metrics(),
		Tracer:            obs.Tracer(),
	})

	var readThrough *cache.ReadThrough
	if cfg.CacheTTL > 0 {
		readThrough = cache.NewReadThrough(cache.NewMemoryStore(cfg.CacheMaxEntries), cfg.CacheTTL)
	}

	server := mcptools.NewServer(version, mcptools.Deps{
		Websets: websets.NewService(apiClient, readThrough, logger),
		Search:  search.NewService(apiClient, readThrough, logger),
		Client:  apiClient,
		Logger:  logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("version", version).Msg("websets-mcp serving on stdio")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("server exited")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := obs.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("telemetry shutdown failed")
	}
}
