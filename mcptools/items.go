package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/websetkit/websets-mcp/websets"
)

type itemRefInput struct {
	WebsetID string `json:"websetId" jsonschema:"description=The webset ID"`
	ItemID   string `json:"itemId" jsonschema:"description=The item ID"`
}

type listItemsInput struct {
	WebsetID string `json:"websetId" jsonschema:"description=The webset ID"`
	Cursor   string `json:"cursor,omitempty" jsonschema:"description=Pagination cursor from a previous call"`
	Limit    int    `json:"limit,omitempty" jsonschema:"description=Maximum number of items (default 25)"`
}

func registerItemTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_items_get",
		Description: "Get a single webset item with its properties, evaluations and enrichment values.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input itemRefInput) (*mcp.CallToolResult, any, error) {
		item, err := deps.Websets.GetItem(ctx, input.WebsetID, input.ItemID)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(item), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_items_list",
		Description: "List a webset's items with cursor pagination.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input listItemsInput) (*mcp.CallToolResult, any, error) {
		page, err := deps.Websets.ListItems(ctx, input.WebsetID, websets.ListOpts{Cursor: input.Cursor, Limit: input.Limit})
		if err != nil {
			return errorResult(err), nil, nil
		}
		hints := []string{"Inspect one item with websets_items_get"}
		if page.HasMore && page.NextCursor != nil {
			hints = append(hints, "Fetch the next page with cursor "+*page.NextCursor)
		}
		return jsonResult(page, hints...), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_items_delete",
		Description: "Delete an item from a webset.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input itemRefInput) (*mcp.CallToolResult, any, error) {
		item, err := deps.Websets.DeleteItem(ctx, input.WebsetID, input.ItemID)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(item), nil, nil
	})
}
