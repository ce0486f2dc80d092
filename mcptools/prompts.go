package mcptools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const quickstartTemplate = `You are helping build a webset: a curated, verified collection of web data.

Goal: %s

Work through these steps:
1. Call websets_create with a search describing the goal. Keep the query
   specific about the entity type and qualifying criteria.
2. Poll websets_get until status is "idle". Searches verify every candidate
   against the criteria, so this takes minutes, not seconds.
3. Review the first page of websets_items_list. If results miss the mark,
   refine with websets_search_create rather than starting over.
4. Add derived columns with websets_enrichment_create for any field the
   goal needs that items don't already carry.

For a quick exploratory look before committing to a webset, use web_search.`

const statusCheckTemplate = `Check on webset %s and report its state.

1. Call websets_get with the webset ID.
2. Summarize: overall status, each search's progress, each enrichment's status.
3. If anything is still running, estimate what remains from the progress counts.
4. If the webset is idle, show a sample of items from websets_items_list.
5. If anything looks stuck, check websets_events_list for recent errors and
   get_client_stats for rate limiting or an open circuit breaker.`

func registerPrompts(server *mcp.Server) {
	server.AddPrompt(&mcp.Prompt{
		Name:        "websets_quickstart",
		Description: "Guided workflow for building a new webset from a research goal.",
		Arguments: []*mcp.PromptArgument{
			{Name: "goal", Description: "What the webset should collect", Required: true},
		},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		goal := req.Params.Arguments["goal"]
		if goal == "" {
			goal = "(describe the collection you want)"
		}
		return &mcp.GetPromptResult{
			Description: "Webset building workflow",
			Messages: []*mcp.PromptMessage{{
				Role:    "user",
				Content: &mcp.TextContent{Text: fmt.Sprintf(quickstartTemplate, goal)},
			}},
		}, nil
	})

	server.AddPrompt(&mcp.Prompt{
		Name:        "websets_status_check",
		Description: "Inspect a webset's progress and diagnose stalls.",
		Arguments: []*mcp.PromptArgument{
			{Name: "websetId", Description: "The webset to inspect", Required: true},
		},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		id := req.Params.Arguments["websetId"]
		return &mcp.GetPromptResult{
			Description: "Webset status report",
			Messages: []*mcp.PromptMessage{{
				Role:    "user",
				Content: &mcp.TextContent{Text: fmt.Sprintf(statusCheckTemplate, id)},
			}},
		}, nil
	})
}
