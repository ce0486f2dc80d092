package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type emptyInput struct{}

func registerDiagnosticTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_client_stats",
		Description: "Inspect the API client's rate limiter and circuit breaker state.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
		stats := deps.Client.Stats()
		payload := map[string]any{
			"rateLimiter": map[string]any{
				"requestsPerSecond": stats.RateLimiter.RequestsPerSecond,
				"burst":             stats.RateLimiter.Burst,
				"availableTokens":   stats.RateLimiter.AvailableTokens,
				"waitTimeMs":        stats.RateLimiter.WaitTime.Milliseconds(),
			},
			"circuitBreaker": map[string]any{
				"state":     stats.Circuit.State.String(),
				"failures":  stats.Circuit.Failures,
				"successes": stats.Circuit.Successes,
			},
		}
		if !stats.Circuit.LastFailure.IsZero() {
			payload["circuitBreaker"].(map[string]any)["lastFailure"] = stats.Circuit.LastFailure
		}
		return jsonResult(payload), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reset_client_stats",
		Description: "Reset the rate limiter and circuit breaker. Use after resolving an upstream outage to stop failing fast.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
		deps.Client.ResetResilience()
		deps.Logger.Info().Msg("resilience state reset via tool call")
		return textResult("Rate limiter and circuit breaker reset."), nil, nil
	})
}
