package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/websetkit/websets-mcp/websets"
)

type createWebhookInput struct {
	URL    string   `json:"url" jsonschema:"description=HTTPS endpoint that receives event deliveries"`
	Events []string `json:"events" jsonschema:"description=Event types to subscribe to such as webset.idle or webset.item.created"`
}

type webhookIDInput struct {
	WebhookID string `json:"webhookId" jsonschema:"description=The webhook ID"`
}

type listWebhooksInput struct {
	Cursor string `json:"cursor,omitempty" jsonschema:"description=Pagination cursor from a previous call"`
	Limit  int    `json:"limit,omitempty" jsonschema:"description=Maximum number of results (default 25)"`
}

type updateWebhookInput struct {
	WebhookID string   `json:"webhookId" jsonschema:"description=The webhook ID"`
	URL       string   `json:"url,omitempty" jsonschema:"description=Replacement endpoint URL"`
	Events    []string `json:"events,omitempty" jsonschema:"description=Replacement event subscriptions"`
}

type listWebhookAttemptsInput struct {
	WebhookID string `json:"webhookId" jsonschema:"description=The webhook ID"`
	EventType string `json:"eventType,omitempty" jsonschema:"description=Only show attempts for this event type"`
	Cursor    string `json:"cursor,omitempty" jsonschema:"description=Pagination cursor from a previous call"`
	Limit     int    `json:"limit,omitempty" jsonschema:"description=Maximum number of results (default 25)"`
}

func registerWebhookTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_webhook_create",
		Description: "Register a webhook for webset events. The signing secret is only shown in this response.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input createWebhookInput) (*mcp.CallToolResult, any, error) {
		if input.URL == "" || len(input.Events) == 0 {
			return textErr("url and events are required"), nil, nil
		}
		wh, err := deps.Websets.CreateWebhook(ctx, websets.CreateWebhookRequest{URL: input.URL, Events: input.Events})
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(wh,
			"Store the secret now; it is not returned again",
			"Check deliveries with websets_webhook_attempts_list",
		), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_webhook_get",
		Description: "Get a webhook's configuration and status.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input webhookIDInput) (*mcp.CallToolResult, any, error) {
		wh, err := deps.Websets.GetWebhook(ctx, input.WebhookID)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(wh), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_webhook_list",
		Description: "List all registered webhooks.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input listWebhooksInput) (*mcp.CallToolResult, any, error) {
		page, err := deps.Websets.ListWebhooks(ctx, websets.ListOpts{Cursor: input.Cursor, Limit: input.Limit})
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(page), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_webhook_update",
		Description: "Update a webhook's endpoint URL or event subscriptions.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input updateWebhookInput) (*mcp.CallToolResult, any, error) {
		wh, err := deps.Websets.UpdateWebhook(ctx, input.WebhookID, websets.UpdateWebhookRequest{URL: input.URL, Events: input.Events})
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(wh), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_webhook_delete",
		Description: "Unregister a webhook. Pending deliveries are dropped.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input webhookIDInput) (*mcp.CallToolResult, any, error) {
		wh, err := deps.Websets.DeleteWebhook(ctx, input.WebhookID)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(wh), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_webhook_attempts_list",
		Description: "List a webhook's delivery attempts, newest first, to debug failing endpoints.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input listWebhookAttemptsInput) (*mcp.CallToolResult, any, error) {
		page, err := deps.Websets.ListWebhookAttempts(ctx, input.WebhookID, input.EventType, websets.ListOpts{Cursor: input.Cursor, Limit: input.Limit})
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(page), nil, nil
	})
}
