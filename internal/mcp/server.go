package mcp

import (
	"context"
	"fmt"

	"github.com/jacobduba/sd18-isu/internal/factory"
	"github.com/jacobduba/sd18-isu/internal/search"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerOptions contains configuration for the MCP server
type ServerOptions struct {
	DB       string // SQLite database path
	Store    string // Embedding store backend
	EmbedURL string // Encoder API URL
	TopK     int    // Default result count
}

// New returns an MCP server exposing the query pipeline as tools: fast
// similarity search and the full search-and-rank flow. Index building stays a
// CLI concern. Tool calls may override the index location per request; those
// requests get temporary components instead of the shared service.
func New(service *search.Service, opts ServerOptions) *server.MCPServer {
	srv := &Server{service: service, opts: opts}

	s := server.NewMCPServer(
		"codesearch/mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)
	s.AddTool(newSemanticSearchTool(), srv.handleSemanticSearch)
	s.AddTool(newSearchAndRankTool(), srv.handleSearchAndRank)
	return s
}

// Server wraps the shared search service for tool handlers
type Server struct {
	service *search.Service
	opts    ServerOptions
}

func newSemanticSearchTool() mcp.Tool {
	return mcp.NewTool(
		"semantic_search",
		mcp.WithDescription("Semantic code search by natural language query (vector similarity only)"),
		mcp.WithString("query", mcp.Description("Natural language description of the code"), mcp.Required()),
		mcp.WithNumber("top_k", mcp.Description("Top K results"), mcp.DefaultNumber(10)),
		mcp.WithString("db", mcp.Description("SQLite DB path override")),
		mcp.WithString("embed_url", mcp.Description("Encoder API URL override")),
	)
}

func newSearchAndRankTool() mcp.Tool {
	return mcp.NewTool(
		"search_and_rank",
		mcp.WithDescription("Semantic code search with LLM re-ranking of the shortlist"),
		mcp.WithString("query", mcp.Description("Natural language description of the code"), mcp.Required()),
		mcp.WithNumber("top_k", mcp.Description("Top K results"), mcp.DefaultNumber(10)),
		mcp.WithString("db", mcp.Description("SQLite DB path override")),
		mcp.WithString("embed_url", mcp.Description("Encoder API URL override")),
	)
}

// serviceFor resolves the search service for a request. Default configuration
// reuses the shared service; db or embed_url overrides get a throwaway one.
// The returned cleanup is non-nil only for throwaway components.
func (srv *Server) serviceFor(req mcp.CallToolRequest) (*search.Service, func() error, error) {
	dbPath := req.GetString("db", srv.opts.DB)
	embURL := req.GetString("embed_url", srv.opts.EmbedURL)

	if dbPath == srv.opts.DB && embURL == srv.opts.EmbedURL {
		if srv.service == nil {
			return nil, nil, fmt.Errorf("search service not initialized")
		}
		return srv.service, nil, nil
	}

	f := factory.NewComponentFactory(factory.ComponentConfig{
		DBPath:       dbPath,
		StoreBackend: srv.opts.Store,
		EmbedURL:     embURL,
	})
	components, err := f.CreateComponents()
	if err != nil {
		return nil, nil, fmt.Errorf("initialize components failed: %w", err)
	}
	return components.Searcher, components.Cleanup, nil
}

func (srv *Server) handleSemanticSearch(
	ctx context.Context,
	req mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	topK := req.GetInt("top_k", srv.opts.TopK)

	svc, cleanup, err := srv.serviceFor(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if cleanup != nil {
		defer func() { _ = cleanup() }()
	}

	queryVector, err := svc.Embedder.EmbedQuery(query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("embed query failed: %v", err)), nil
	}
	hits, err := svc.Engine.Search(queryVector, topK)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultStructuredOnly(hits), nil
}

func (srv *Server) handleSearchAndRank(
	ctx context.Context,
	req mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	topK := req.GetInt("top_k", srv.opts.TopK)

	svc, cleanup, err := srv.serviceFor(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if cleanup != nil {
		defer func() { _ = cleanup() }()
	}

	resp, err := svc.SearchAndRank(ctx, query, topK)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultStructuredOnly(resp), nil
}
