package mcp

import (
	"testing"

	"github.com/jacobduba/sd18-isu/internal/embeddings"
	"github.com/jacobduba/sd18-isu/internal/search"
	"github.com/jacobduba/sd18-isu/internal/storage/memory"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
)

func newTestService() *search.Service {
	return &search.Service{
		Embedder: embeddings.NewLocal(8),
		Engine:   search.NewEngine(memory.New()),
	}
}

func TestNew(t *testing.T) {
	server := New(newTestService(), ServerOptions{TopK: 10})
	assert.NotNil(t, server)
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		toolFunc func() mcp.Tool
		toolName string
	}{
		{"semantic_search", newSemanticSearchTool, "semantic_search"},
		{"search_and_rank", newSearchAndRankTool, "search_and_rank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := tt.toolFunc()
			assert.Equal(t, tt.toolName, tool.Name)
			assert.NotEmpty(t, tool.Description)
			assert.Contains(t, tool.InputSchema.Properties, "query")
			queryProp := tool.InputSchema.Properties["query"].(map[string]interface{})
			assert.Equal(t, "string", queryProp["type"])
		})
	}
}
