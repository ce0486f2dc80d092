package mcptools

import (
	"encoding/json"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/websetkit/websets-mcp/resilience"
)

// jsonResult formats v as indented JSON with optional next-step hints.
func jsonResult(v any, hints ...string) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(err)
	}

	text := string(data)
	if len(hints) > 0 {
		text += "\n\nNext steps:\n- " + strings.Join(hints, "\n- ")
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// textResult wraps plain text in a tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorResult converts any failure into an IsError result with the
// normalized {code, message, kind, retryable, details} payload. The
// classifier has already masked sensitive substrings.
func errorResult(err error) *mcp.CallToolResult {
	apiErr := resilience.NewAPIError(err)

	payload := map[string]any{
		"code":      apiErr.Code,
		"message":   apiErr.Message,
		"kind":      apiErr.Kind.String(),
		"retryable": apiErr.Retryable,
	}
	if apiErr.Details != nil {
		payload["details"] = apiErr.Details
	}
	if apiErr.Retryable {
		payload["hint"] = "This error is transient. Wait a moment and call the tool again."
	}

	data, merr := json.MarshalIndent(payload, "", "  ")
	if merr != nil {
		data = []byte(apiErr.Error())
	}

	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}
