package indexerfx

import (
	"github.com/jacobduba/sd18-isu/internal/embeddings"
	"github.com/jacobduba/sd18-isu/internal/indexer"
	"github.com/jacobduba/sd18-isu/internal/indexer/pipeline"
	"github.com/jacobduba/sd18-isu/internal/storage"
	"go.uber.org/fx"
)

// Params represents dependencies for the indexer
type Params struct {
	fx.In

	Embedder embeddings.Embedder
	Store    storage.EmbeddingStore
}

// NewIndexer creates a new corpus indexer instance
func NewIndexer(params Params) indexer.Indexer {
	return pipeline.New(params.Embedder, params.Store, pipeline.Options{})
}

// Module provides indexer components
var Module = fx.Module("indexer",
	fx.Provide(NewIndexer),
)
