package mcptools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/websetkit/websets-mcp/client"
	"github.com/websetkit/websets-mcp/search"
	"github.com/websetkit/websets-mcp/websets"
)

// Deps are the collaborators the tool handlers call into.
type Deps struct {
	Websets *websets.Service
	Search  *search.Service
	Client  *client.Client
	Logger  zerolog.Logger
}

// NewServer builds the MCP server with every tool and prompt registered.
func NewServer(version string, deps Deps) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "websets-mcp",
		Version: version,
	}, nil)

	registerWebsetTools(server, deps)
	registerSearchTools(server, deps)
	registerItemTools(server, deps)
	registerEnrichmentTools(server, deps)
	registerWebhookTools(server, deps)
	registerEventTools(server, deps)
	registerMonitorTools(server, deps)
	registerWebSearchTools(server, deps)
	registerDiagnosticTools(server, deps)
	registerPrompts(server)

	return server
}
