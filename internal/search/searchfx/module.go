package searchfx

import (
	"github.com/jacobduba/sd18-isu/internal/embeddings"
	"github.com/jacobduba/sd18-isu/internal/judge"
	"github.com/jacobduba/sd18-isu/internal/search"
	"github.com/jacobduba/sd18-isu/internal/storage"
	"go.uber.org/fx"
)

// Params represents dependencies for search service
type Params struct {
	fx.In

	Embedder embeddings.Embedder
	Store    storage.EmbeddingStore
	Judge    *judge.Judge `optional:"true"`
}

// NewSearchService creates a new search service instance
func NewSearchService(params Params) *search.Service {
	svc := &search.Service{
		Embedder: params.Embedder,
		Engine:   search.NewEngine(params.Store),
	}
	if params.Judge != nil {
		svc.Reranker = params.Judge
	}
	return svc
}

// Module provides search components
var Module = fx.Module("search",
	fx.Provide(NewSearchService),
)
