package mcptools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/websetkit/websets-mcp/websets"
)

// rawJSON converts a schema-friendly tool input value into the raw domain
// JSON the API expects. Nil stays nil so omitempty fields drop out.
func rawJSON(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

type createWebsetInput struct {
	Search      map[string]any    `json:"search,omitempty" jsonschema:"description=Initial search specification with query and count"`
	Enrichments []map[string]any  `json:"enrichments,omitempty" jsonschema:"description=Enrichment specifications to apply to every item"`
	ExternalID  string            `json:"externalId,omitempty" jsonschema:"description=Your own identifier for this webset"`
	Metadata    map[string]string `json:"metadata,omitempty" jsonschema:"description=Key-value metadata to attach"`
}

type getWebsetInput struct {
	WebsetID    string `json:"websetId" jsonschema:"description=The webset ID"`
	ExpandItems bool   `json:"expandItems,omitempty" jsonschema:"description=Include the webset's items inline"`
}

type listWebsetsInput struct {
	Cursor string `json:"cursor,omitempty" jsonschema:"description=Pagination cursor from a previous call"`
	Limit  int    `json:"limit,omitempty" jsonschema:"description=Maximum number of results (default 25)"`
}

type updateWebsetInput struct {
	WebsetID string            `json:"websetId" jsonschema:"description=The webset ID"`
	Metadata map[string]string `json:"metadata" jsonschema:"description=Replacement key-value metadata"`
}

type websetIDInput struct {
	WebsetID string `json:"websetId" jsonschema:"description=The webset ID"`
}

func registerWebsetTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_create",
		Description: "Create a new webset, optionally with an initial search and enrichments. The webset builds asynchronously.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input createWebsetInput) (*mcp.CallToolResult, any, error) {
		var enrichments json.RawMessage
		if len(input.Enrichments) > 0 {
			enrichments = rawJSON(input.Enrichments)
		}
		ws, err := deps.Websets.CreateWebset(ctx, websets.CreateWebsetRequest{
			Search:      rawJSON(input.Search),
			Enrichments: enrichments,
			ExternalID:  input.ExternalID,
			Metadata:    input.Metadata,
		})
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(ws,
			"Poll progress with websets_get using websetId "+ws.ID,
			"List collected results with websets_items_list once the status is idle",
		), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_get",
		Description: "Get a webset's status, searches and enrichments. Set expandItems to include its items inline.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input getWebsetInput) (*mcp.CallToolResult, any, error) {
		ws, err := deps.Websets.GetWebset(ctx, input.WebsetID, input.ExpandItems)
		if err != nil {
			return errorResult(err), nil, nil
		}
		hints := []string{"List items with websets_items_list"}
		if ws.Status != "idle" {
			hints = append(hints, "The webset is still processing; poll websets_get again shortly")
		}
		return jsonResult(ws, hints...), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_list",
		Description: "List all websets with cursor pagination.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input listWebsetsInput) (*mcp.CallToolResult, any, error) {
		page, err := deps.Websets.ListWebsets(ctx, websets.ListOpts{Cursor: input.Cursor, Limit: input.Limit})
		if err != nil {
			return errorResult(err), nil, nil
		}
		hints := []string{"Inspect a webset with websets_get"}
		if page.HasMore && page.NextCursor != nil {
			hints = append(hints, "Fetch the next page with cursor "+*page.NextCursor)
		}
		return jsonResult(page, hints...), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_update",
		Description: "Update a webset's metadata.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input updateWebsetInput) (*mcp.CallToolResult, any, error) {
		ws, err := deps.Websets.UpdateWebset(ctx, input.WebsetID, websets.UpdateWebsetRequest{Metadata: input.Metadata})
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(ws), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_delete",
		Description: "Delete a webset and all of its items. This cannot be undone.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input websetIDInput) (*mcp.CallToolResult, any, error) {
		ws, err := deps.Websets.DeleteWebset(ctx, input.WebsetID)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(ws, "The webset is gone; websets_list shows what remains"), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_cancel",
		Description: "Cancel all running searches and enrichments on a webset. Already-collected items are kept.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input websetIDInput) (*mcp.CallToolResult, any, error) {
		ws, err := deps.Websets.CancelWebset(ctx, input.WebsetID)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(ws, "Collected items remain available via websets_items_list"), nil, nil
	})
}
