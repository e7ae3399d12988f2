package embeddingsfx

import (
	"github.com/jacobduba/sd18-isu/internal/config/configfx"
	"github.com/jacobduba/sd18-isu/internal/embeddings"
	"go.uber.org/fx"
)

// Params represents dependencies for embeddings components
type Params struct {
	fx.In

	Config *configfx.Config
}

// NewEmbedder creates a new embedder instance
func NewEmbedder(params Params) embeddings.Embedder {
	if params.Config.LocalEmbedder {
		return embeddings.NewLocal(params.Config.VectorDimension)
	}
	return embeddings.NewApi(params.Config.EmbedURL)
}

// Module provides embeddings components
var Module = fx.Module("embeddings",
	fx.Provide(NewEmbedder),
)
