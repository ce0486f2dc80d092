package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/websetkit/websets-mcp/websets"
)

type createSearchInput struct {
	WebsetID string           `json:"websetId" jsonschema:"description=The webset to search into"`
	Query    string           `json:"query" jsonschema:"description=Natural-language description of what to find"`
	Count    int              `json:"count,omitempty" jsonschema:"description=Target number of results (default 10)"`
	Criteria []map[string]any `json:"criteria,omitempty" jsonschema:"description=Verification criteria each result must satisfy"`
	Entity   map[string]any   `json:"entity,omitempty" jsonschema:"description=Entity type specification such as company or person"`
	Behavior string           `json:"behavior,omitempty" jsonschema:"description=How results merge into the webset: override or append"`
}

type searchRefInput struct {
	WebsetID string `json:"websetId" jsonschema:"description=The webset ID"`
	SearchID string `json:"searchId" jsonschema:"description=The search ID"`
}

func registerSearchTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_search_create",
		Description: "Start an asynchronous search that collects verified results into a webset.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input createSearchInput) (*mcp.CallToolResult, any, error) {
		if input.Query == "" {
			return textErr("query is required"), nil, nil
		}
		sr, err := deps.Websets.CreateSearch(ctx, input.WebsetID, websets.CreateSearchRequest{
			Query:    input.Query,
			Count:    input.Count,
			Criteria: rawJSON(nonEmpty(input.Criteria)),
			Entity:   rawJSON(input.Entity),
			Behavior: input.Behavior,
		})
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(sr,
			"Poll progress with websets_search_get using searchId "+sr.ID,
			"New items appear in websets_items_list as they are verified",
		), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_search_get",
		Description: "Get a search's status and completion progress.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input searchRefInput) (*mcp.CallToolResult, any, error) {
		sr, err := deps.Websets.GetSearch(ctx, input.WebsetID, input.SearchID)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(sr), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_search_cancel",
		Description: "Cancel a running search. Items already collected are kept.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input searchRefInput) (*mcp.CallToolResult, any, error) {
		sr, err := deps.Websets.CancelSearch(ctx, input.WebsetID, input.SearchID)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(sr), nil, nil
	})
}

// nonEmpty returns nil for an empty slice so rawJSON emits nothing.
func nonEmpty(v []map[string]any) any {
	if len(v) == 0 {
		return nil
	}
	return v
}

// textErr is a plain-text validation failure result.
func textErr(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
