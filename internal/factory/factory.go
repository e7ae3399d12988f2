package factory

import (
	"fmt"

	"github.com/jacobduba/sd18-isu/internal/constants"
	"github.com/jacobduba/sd18-isu/internal/embeddings"
	"github.com/jacobduba/sd18-isu/internal/indexer/pipeline"
	"github.com/jacobduba/sd18-isu/internal/judge"
	"github.com/jacobduba/sd18-isu/internal/search"
	"github.com/jacobduba/sd18-isu/internal/storage"
	"github.com/jacobduba/sd18-isu/internal/storage/memory"
	"github.com/jacobduba/sd18-isu/internal/storage/sqlite"
	"github.com/jacobduba/sd18-isu/internal/storage/sqlvec"
)

// ComponentConfig holds configuration for creating components
type ComponentConfig struct {
	DBPath          string
	StoreBackend    string
	EmbedURL        string
	JudgeURL        string
	JudgeModel      string
	JudgeAPIKey     string
	VectorDimension int
}

// Components holds all the main components
type Components struct {
	Embedder embeddings.Embedder
	Store    storage.EmbeddingStore
	Judge    *judge.Judge
	Searcher *search.Service
}

// ComponentFactory creates component instances outside the fx graph; the MCP
// handlers use it when a request overrides the server-level configuration.
type ComponentFactory struct {
	config ComponentConfig
}

// NewComponentFactory creates a new component factory
func NewComponentFactory(config ComponentConfig) *ComponentFactory {
	if config.EmbedURL == "" {
		config.EmbedURL = constants.DefaultEmbedURL
	}
	if config.JudgeURL == "" {
		config.JudgeURL = constants.DefaultJudgeURL
	}
	if config.JudgeModel == "" {
		config.JudgeModel = constants.DefaultJudgeModel
	}
	return &ComponentFactory{config: config}
}

// CreateComponents creates all components with the given configuration
func (f *ComponentFactory) CreateComponents() (*Components, error) {
	embedder := f.CreateEmbedder()

	store, err := f.CreateStore()
	if err != nil {
		return nil, fmt.Errorf("create embedding store failed: %w", err)
	}

	j := f.CreateJudge()
	searcher := f.CreateSearchService(embedder, store, j)

	return &Components{
		Embedder: embedder,
		Store:    store,
		Judge:    j,
		Searcher: searcher,
	}, nil
}

// CreateEmbedder creates an embedder instance
func (f *ComponentFactory) CreateEmbedder() embeddings.Embedder {
	if f.config.EmbedURL == "local" {
		dim := f.config.VectorDimension
		if dim <= 0 {
			dim = 256
		}
		return embeddings.NewLocal(dim)
	}
	return embeddings.NewApi(f.config.EmbedURL)
}

// CreateStore creates an embedding store instance
func (f *ComponentFactory) CreateStore() (storage.EmbeddingStore, error) {
	switch f.config.StoreBackend {
	case "memory":
		return memory.New(), nil
	case "vec":
		if f.config.DBPath == "" {
			return nil, fmt.Errorf("database path must be specified")
		}
		return sqlvec.New(f.config.DBPath, f.config.VectorDimension)
	case "", "sqlite":
		if f.config.DBPath == "" {
			return nil, fmt.Errorf("database path must be specified")
		}
		return sqlite.New(f.config.DBPath)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", f.config.StoreBackend)
	}
}

// CreateJudge creates a re-ranking judge instance
func (f *ComponentFactory) CreateJudge() *judge.Judge {
	llm := judge.NewHTTPClient(f.config.JudgeURL, f.config.JudgeAPIKey)
	return judge.New(llm, f.config.JudgeModel, judge.Options{})
}

// CreateSearchService creates a search service instance
func (f *ComponentFactory) CreateSearchService(
	embedder embeddings.Embedder,
	store storage.EmbeddingStore,
	j *judge.Judge,
) *search.Service {
	svc := &search.Service{
		Embedder: embedder,
		Engine:   search.NewEngine(store),
	}
	if j != nil {
		svc.Reranker = j
	}
	return svc
}

// CreateIndexer creates an indexer instance with the given components
func (f *ComponentFactory) CreateIndexer(components *Components) *pipeline.Indexer {
	return pipeline.New(components.Embedder, components.Store, pipeline.Options{})
}

// Cleanup releases resources held by components
func (c *Components) Cleanup() error {
	if c.Store != nil {
		if closer, ok := c.Store.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				return fmt.Errorf("close embedding store failed: %w", err)
			}
		}
	}
	return nil
}
