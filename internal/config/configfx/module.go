package configfx

import (
	"os"

	"github.com/jacobduba/sd18-isu/internal/constants"
	"go.uber.org/fx"
)

// Config holds the application configuration
type Config struct {
	DBPath          string
	StoreBackend    string // "sqlite" (default), "vec", "memory"
	EmbedURL        string // "local" selects the deterministic offline embedder
	LocalEmbedder   bool
	VectorDimension int
	JudgeURL        string
	JudgeModel      string
	JudgeAPIKey     string
	TopK            int
	WebAddr         string
}

// Params represents the parameters needed to create configuration
type Params struct {
	fx.In

	DBPath     string `name:"dbPath"     optional:"true"`
	Store      string `name:"store"      optional:"true"`
	EmbedURL   string `name:"embedURL"   optional:"true"`
	JudgeURL   string `name:"judgeURL"   optional:"true"`
	JudgeModel string `name:"judgeModel" optional:"true"`
	WebAddr    string `name:"webAddr"    optional:"true"`
}

// NewConfig creates a new configuration with defaults. Flag values win over
// environment variables, which win over compiled-in defaults.
func NewConfig(params Params) *Config {
	config := &Config{
		DBPath:       params.DBPath,
		StoreBackend: params.Store,
		EmbedURL:     params.EmbedURL,
		JudgeURL:     params.JudgeURL,
		JudgeModel:   params.JudgeModel,
		WebAddr:      params.WebAddr,
		JudgeAPIKey:  os.Getenv("CODESEARCH_JUDGE_API_KEY"),
		TopK:         constants.DefaultTopK,
	}

	if config.EmbedURL == "" {
		config.EmbedURL = envOr("CODESEARCH_EMBED_URL", constants.DefaultEmbedURL)
	}
	if config.JudgeURL == "" {
		config.JudgeURL = envOr("CODESEARCH_JUDGE_URL", constants.DefaultJudgeURL)
	}
	if config.JudgeModel == "" {
		config.JudgeModel = envOr("CODESEARCH_JUDGE_MODEL", constants.DefaultJudgeModel)
	}
	if config.WebAddr == "" {
		config.WebAddr = ":5000"
	}
	if config.EmbedURL == "local" {
		config.LocalEmbedder = true
		config.VectorDimension = 256
	}

	return config
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Module provides configuration for the application
var Module = fx.Module("config",
	fx.Provide(NewConfig),
)
