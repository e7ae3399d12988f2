package appfx

import (
	"github.com/jacobduba/sd18-isu/cmd/cmdsfx"
	"github.com/jacobduba/sd18-isu/internal/config/configfx"
	"github.com/jacobduba/sd18-isu/internal/embeddings/embeddingsfx"
	"github.com/jacobduba/sd18-isu/internal/indexer/indexerfx"
	"github.com/jacobduba/sd18-isu/internal/judge/judgefx"
	"github.com/jacobduba/sd18-isu/internal/mcp/mcpfx"
	"github.com/jacobduba/sd18-isu/internal/search/searchfx"
	"github.com/jacobduba/sd18-isu/internal/storage/storagefx"
	"go.uber.org/fx"
)

// Module combines all application modules
var Module = fx.Options(
	configfx.Module,
	embeddingsfx.Module,
	storagefx.Module,
	searchfx.Module,
	indexerfx.Module,
	judgefx.Module,
	mcpfx.Module,
	cmdsfx.Module,
)

// NewAppWithConfig creates an Fx app with the given configuration values
func NewAppWithConfig(dbPath, store, embedURL, judgeURL, judgeModel, webAddr string) *fx.App {
	return fx.New(
		Module,
		fx.NopLogger,
		fx.Supply(
			fx.Annotate(dbPath, fx.ResultTags(`name:"dbPath"`)),
			fx.Annotate(store, fx.ResultTags(`name:"store"`)),
			fx.Annotate(embedURL, fx.ResultTags(`name:"embedURL"`)),
			fx.Annotate(judgeURL, fx.ResultTags(`name:"judgeURL"`)),
			fx.Annotate(judgeModel, fx.ResultTags(`name:"judgeModel"`)),
			fx.Annotate(webAddr, fx.ResultTags(`name:"webAddr"`)),
		),
	)
}

// NewApp creates an Fx app with default configuration
func NewApp() *fx.App {
	return fx.New(Module, fx.NopLogger)
}
