package judgefx

import (
	"github.com/jacobduba/sd18-isu/internal/config/configfx"
	"github.com/jacobduba/sd18-isu/internal/judge"
	"go.uber.org/fx"
)

// Params represents dependencies for the re-ranking judge
type Params struct {
	fx.In

	Config *configfx.Config
}

// NewJudge creates a new judge instance backed by the configured service
func NewJudge(params Params) *judge.Judge {
	llm := judge.NewHTTPClient(params.Config.JudgeURL, params.Config.JudgeAPIKey)
	return judge.New(llm, params.Config.JudgeModel, judge.Options{})
}

// Module provides the re-ranking judge
var Module = fx.Module("judge",
	fx.Provide(NewJudge),
)
