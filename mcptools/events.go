package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/websetkit/websets-mcp/websets"
)

type getEventInput struct {
	EventID string `json:"eventId" jsonschema:"description=The event ID"`
}

type listEventsInput struct {
	Types  []string `json:"types,omitempty" jsonschema:"description=Only show events of these types"`
	Cursor string   `json:"cursor,omitempty" jsonschema:"description=Pagination cursor from a previous call"`
	Limit  int      `json:"limit,omitempty" jsonschema:"description=Maximum number of results (default 25)"`
}

func registerEventTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_event_get",
		Description: "Get a single event from the webset activity stream.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input getEventInput) (*mcp.CallToolResult, any, error) {
		evt, err := deps.Websets.GetEvent(ctx, input.EventID)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(evt), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_events_list",
		Description: "List webset activity events, newest first, optionally filtered by type.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input listEventsInput) (*mcp.CallToolResult, any, error) {
		page, err := deps.Websets.ListEvents(ctx, input.Types, websets.ListOpts{Cursor: input.Cursor, Limit: input.Limit})
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(page, "Inspect one event with websets_event_get"), nil, nil
	})
}
