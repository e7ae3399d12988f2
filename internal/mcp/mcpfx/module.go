package mcpfx

import (
	"github.com/jacobduba/sd18-isu/internal/config/configfx"
	appmcp "github.com/jacobduba/sd18-isu/internal/mcp"
	"github.com/jacobduba/sd18-isu/internal/search"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/fx"
)

// Params represents dependencies for MCP server
type Params struct {
	fx.In

	SearchService *search.Service
	Config        *configfx.Config
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(params Params) *server.MCPServer {
	return appmcp.New(params.SearchService, appmcp.ServerOptions{
		DB:       params.Config.DBPath,
		Store:    params.Config.StoreBackend,
		EmbedURL: params.Config.EmbedURL,
		TopK:     params.Config.TopK,
	})
}

// Module provides MCP components
var Module = fx.Module("mcp",
	fx.Provide(NewMCPServer),
)
