package cmdsfx

import (
	"context"
	"fmt"

	"github.com/jacobduba/sd18-isu/internal/config/configfx"
	"github.com/jacobduba/sd18-isu/internal/corpus"
	"github.com/jacobduba/sd18-isu/internal/indexer"
	"github.com/jacobduba/sd18-isu/internal/search"
	"github.com/jacobduba/sd18-isu/internal/web"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/fx"
)

// CommandRunner provides methods to run different application commands
type CommandRunner struct {
	config        *configfx.Config
	searchService *search.Service
	indexer       indexer.Indexer
	mcpServer     *server.MCPServer
}

// Params represents dependencies for command runner
type Params struct {
	fx.In

	Config        *configfx.Config
	SearchService *search.Service   `optional:"true"`
	Indexer       indexer.Indexer   `optional:"true"`
	MCPServer     *server.MCPServer `optional:"true"`
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(params Params) *CommandRunner {
	return &CommandRunner{
		config:        params.Config,
		searchService: params.SearchService,
		indexer:       params.Indexer,
		mcpServer:     params.MCPServer,
	}
}

// RunIndex loads a CodeSearchNet export and builds the embedding index
func (r *CommandRunner) RunIndex(ctx context.Context, corpusPath string, limit int) error {
	if r.indexer == nil {
		return fmt.Errorf("indexer not available")
	}

	records, err := corpus.Load(corpusPath, limit)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	fmt.Printf("loaded %d corpus records\n", len(records))

	progCh, errCh := r.indexer.BuildIndexProgress(ctx, records)
	for progCh != nil || errCh != nil {
		select {
		case p, ok := <-progCh:
			if !ok {
				progCh = nil
				continue
			}
			fmt.Printf("\r[%3.0f%%] stage=%s embedded:%d skipped:%d failed:%d of %d",
				p.Percent*100,
				p.Stage,
				p.EmbeddedRecords, p.SkippedRecords, p.FailedRecords, p.TotalRecords,
			)
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				fmt.Println()
				return err
			}
		case <-ctx.Done():
			fmt.Println()
			return ctx.Err()
		}
	}
	fmt.Println()
	fmt.Println("index completed")
	return nil
}

// RunSearch executes the query pipeline and prints the ranked snippets
func (r *CommandRunner) RunSearch(ctx context.Context, query string, topK int, rerank bool) error {
	if r.searchService == nil {
		return fmt.Errorf("search service not available")
	}

	svc := r.searchService
	if !rerank {
		vectorOnly := *svc
		vectorOnly.Reranker = nil
		svc = &vectorOnly
	}

	resp, err := svc.SearchAndRank(ctx, query, topK)
	if err != nil {
		return fmt.Errorf("search unavailable: %w", err)
	}
	if len(resp.Results) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for i, hit := range resp.Results {
		fmt.Printf("Result %d (score: %.4f):\n%s\n\n", i+1, hit.Score, hit.Snippet)
	}
	return nil
}

// RunWeb starts the HTML front end
func (r *CommandRunner) RunWeb() error {
	if r.searchService == nil {
		return fmt.Errorf("search service not available")
	}
	srv := web.NewServer(r.searchService, r.config.TopK)
	return srv.Run(r.config.WebAddr)
}

// RunMCPServer executes the MCP server
func (r *CommandRunner) RunMCPServer(transport, address string) error {
	if r.mcpServer == nil {
		return fmt.Errorf("MCP server not available")
	}

	switch transport {
	case "stdio":
		return server.ServeStdio(r.mcpServer)
	case "http":
		addr := address
		if addr == "" {
			addr = ":8080"
		}
		httpSrv := server.NewStreamableHTTPServer(r.mcpServer)
		return httpSrv.Start(addr)
	default:
		return fmt.Errorf("unsupported transport: %s (supported: stdio, http)", transport)
	}
}

// Module provides command runner
var Module = fx.Module("commands",
	fx.Provide(NewCommandRunner),
)
