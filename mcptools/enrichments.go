package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/websetkit/websets-mcp/websets"
)

type createEnrichmentInput struct {
	WebsetID    string         `json:"websetId" jsonschema:"description=The webset to enrich"`
	Description string         `json:"description" jsonschema:"description=What to derive for every item"`
	Format      string         `json:"format,omitempty" jsonschema:"description=Result format: text, date, number, options, email or phone"`
	Options     map[string]any `json:"options,omitempty" jsonschema:"description=Allowed values when format is options"`
}

type enrichmentRefInput struct {
	WebsetID     string `json:"websetId" jsonschema:"description=The webset ID"`
	EnrichmentID string `json:"enrichmentId" jsonschema:"description=The enrichment ID"`
}

type updateEnrichmentInput struct {
	WebsetID     string            `json:"websetId" jsonschema:"description=The webset ID"`
	EnrichmentID string            `json:"enrichmentId" jsonschema:"description=The enrichment ID"`
	Metadata     map[string]string `json:"metadata" jsonschema:"description=Replacement key-value metadata"`
}

func registerEnrichmentTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_enrichment_create",
		Description: "Add an enrichment that derives a new field for every item in a webset.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input createEnrichmentInput) (*mcp.CallToolResult, any, error) {
		if input.Description == "" {
			return textErr("description is required"), nil, nil
		}
		enr, err := deps.Websets.CreateEnrichment(ctx, input.WebsetID, websets.CreateEnrichmentRequest{
			Description: input.Description,
			Format:      input.Format,
			Options:     rawJSON(input.Options),
		})
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(enr,
			"Poll progress with websets_enrichment_get using enrichmentId "+enr.ID,
			"Enriched values appear on items in websets_items_list",
		), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_enrichment_get",
		Description: "Get an enrichment's status and definition.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input enrichmentRefInput) (*mcp.CallToolResult, any, error) {
		enr, err := deps.Websets.GetEnrichment(ctx, input.WebsetID, input.EnrichmentID)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(enr), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_enrichment_update",
		Description: "Update an enrichment's metadata.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input updateEnrichmentInput) (*mcp.CallToolResult, any, error) {
		enr, err := deps.Websets.UpdateEnrichment(ctx, input.WebsetID, input.EnrichmentID, websets.UpdateEnrichmentRequest{Metadata: input.Metadata})
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(enr), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_enrichment_delete",
		Description: "Delete an enrichment and remove its values from all items.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input enrichmentRefInput) (*mcp.CallToolResult, any, error) {
		enr, err := deps.Websets.DeleteEnrichment(ctx, input.WebsetID, input.EnrichmentID)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(enr), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "websets_enrichment_cancel",
		Description: "Cancel a running enrichment. Values already derived are kept.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input enrichmentRefInput) (*mcp.CallToolResult, any, error) {
		enr, err := deps.Websets.CancelEnrichment(ctx, input.WebsetID, input.EnrichmentID)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(enr), nil, nil
	})
}
