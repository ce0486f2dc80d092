package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/websetkit/websets-mcp/search"
)

type webSearchInput struct {
	Query          string   `json:"query" jsonschema:"description=The search query"`
	NumResults     int      `json:"numResults,omitempty" jsonschema:"description=Number of results to return (default 10)"`
	Type           string   `json:"type,omitempty" jsonschema:"description=Search mode: neural, keyword or auto"`
	Category       string   `json:"category,omitempty" jsonschema:"description=Restrict to a category such as company or research paper"`
	IncludeDomains []string `json:"includeDomains,omitempty" jsonschema:"description=Only return results from these domains"`
	ExcludeDomains []string `json:"excludeDomains,omitempty" jsonschema:"description=Never return results from these domains"`
	IncludeText    bool     `json:"includeText,omitempty" jsonschema:"description=Include full page text with each result"`
	Summary        bool     `json:"summary,omitempty" jsonschema:"description=Include a generated summary with each result"`
}

func registerWebSearchTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "web_search",
		Description: "Run a one-shot web search, optionally retrieving page contents. For large verified collections use websets_create instead.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input webSearchInput) (*mcp.CallToolResult, any, error) {
		if input.Query == "" {
			return textErr("query is required"), nil, nil
		}

		var contents *search.ContentsOpts
		if input.IncludeText || input.Summary {
			contents = &search.ContentsOpts{Text: input.IncludeText, Summary: input.Summary}
		}

		resp, err := deps.Search.Search(ctx, search.Request{
			Query:          input.Query,
			NumResults:     input.NumResults,
			Type:           input.Type,
			Category:       input.Category,
			IncludeDomains: input.IncludeDomains,
			ExcludeDomains: input.ExcludeDomains,
			Contents:       contents,
		})
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(resp, "For an exhaustive, criteria-verified collection, start a webset with websets_create"), nil, nil
	})
}
