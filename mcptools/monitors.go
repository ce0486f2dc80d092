package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/websetkit/websets-mcp/websets"
)

type createMonitorInput struct {
	WebsetID string         `json:"websetId" jsonschema:"description=The webset to monitor"`
	Cadence  map[string]any `json:"cadence" jsonschema:"description=Schedule specification with a cron expression and timezone"`
	Behavior map[string]any `json:"behavior" jsonschema:"description=What each run does: a search or a refresh"`
}

type monitorIDInput struct {
	MonitorID string `json:"monitorId" jsonschema:"description=The monitor ID"`
}

type listMonitorsInput struct {
	WebsetID string `json:"websetId,omitempty" jsonschema:"description=Only show monitors for this webset"`
	Cursor   string `json:"cursor,omitempty" jsonschema:"description=Pagination cursor from a previous call"`
	Limit    int    `json:"limit,omitempty" jsonschema:"description=Maximum number of results (default 25)"`
}

type updateMonitorInput struct {
	MonitorID string         `json:"monitorId" jsonschema:"description=The monitor ID"`
	Status    string         `json:"status,omitempty" jsonschema:"description=Set to enabled or disabled"`
	Cadence   map[string]any `json:"cadence,omitempty" jsonschema:"description=Replacement schedule specification"`
	Behavior  map[string]any `json:"behavior,omitempty" jsonschema:"description=Replacement run behavior"`
}

func registerMonitorTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_monitor_create",
		Description: "Schedule a monitor that keeps a webset fresh by re-running a search or refreshing items.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input createMonitorInput) (*mcp.CallToolResult, any, error) {
		if input.WebsetID == "" {
			return textErr("websetId is required"), nil, nil
		}
		mon, err := deps.Websets.CreateMonitor(ctx, websets.CreateMonitorRequest{
			WebsetID: input.WebsetID,
			Cadence:  rawJSON(input.Cadence),
			Behavior: rawJSON(input.Behavior),
		})
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(mon, "Check run history with websets_monitor_get using monitorId "+mon.ID), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_monitor_get",
		Description: "Get a monitor's schedule, status and last run.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input monitorIDInput) (*mcp.CallToolResult, any, error) {
		mon, err := deps.Websets.GetMonitor(ctx, input.MonitorID)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(mon), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_monitor_list",
		Description: "List monitors, optionally scoped to one webset.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input listMonitorsInput) (*mcp.CallToolResult, any, error) {
		page, err := deps.Websets.ListMonitors(ctx, input.WebsetID, websets.ListOpts{Cursor: input.Cursor, Limit: input.Limit})
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(page), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_monitor_update",
		Description: "Update a monitor's status or schedule.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input updateMonitorInput) (*mcp.CallToolResult, any, error) {
		mon, err := deps.Websets.UpdateMonitor(ctx, input.MonitorID, websets.UpdateMonitorRequest{
			Status:   input.Status,
			Cadence:  rawJSON(input.Cadence),
			Behavior: rawJSON(input.Behavior),
		})
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(mon), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_monitor_delete",
		Description: "Delete a monitor. The webset itself is untouched.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input monitorIDInput) (*mcp.CallToolResult, any, error) {
		mon, err := deps.Websets.DeleteMonitor(ctx, input.MonitorID)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(mon), nil, nil
	})
}
