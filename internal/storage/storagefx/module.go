package storagefx

import (
	"fmt"

	"github.com/jacobduba/sd18-isu/internal/config/configfx"
	"github.com/jacobduba/sd18-isu/internal/storage"
	"github.com/jacobduba/sd18-isu/internal/storage/memory"
	"github.com/jacobduba/sd18-isu/internal/storage/sqlite"
	"github.com/jacobduba/sd18-isu/internal/storage/sqlvec"
	"go.uber.org/fx"
)

// Params represents dependencies for storage components
type Params struct {
	fx.In

	Config *configfx.Config
}

// NewEmbeddingStore creates the embedding store selected by configuration
func NewEmbeddingStore(params Params) (storage.EmbeddingStore, error) {
	switch params.Config.StoreBackend {
	case "memory":
		return memory.New(), nil
	case "vec":
		if params.Config.DBPath == "" {
			return nil, fmt.Errorf("database path must be specified")
		}
		return sqlvec.New(params.Config.DBPath, params.Config.VectorDimension)
	case "", "sqlite":
		if params.Config.DBPath == "" {
			return nil, fmt.Errorf("database path must be specified")
		}
		return sqlite.New(params.Config.DBPath)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", params.Config.StoreBackend)
	}
}

// Module provides storage components
var Module = fx.Module("storage",
	fx.Provide(NewEmbeddingStore),
)
