package commands

import (
	"os"
	"path/filepath"

	"github.com/jacobduba/sd18-isu/cmd/cmdsfx"
	"github.com/jacobduba/sd18-isu/internal/app/appfx"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// connFlags are the flags shared by every subcommand: where the index lives
// and which backing services to talk to.
type connFlags struct {
	dbPath     string
	store      string
	embedURL   string
	judgeURL   string
	judgeModel string
	webAddr    string
}

func (f *connFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dbPath, "db",
		filepath.Join(os.TempDir(), "codesearch.db"), "SQLite DB path")
	cmd.Flags().StringVar(&f.store, "store", "",
		"Embedding store backend: sqlite (default), vec, memory")
	cmd.Flags().StringVar(&f.embedURL, "embed-url", "",
		"Encoder API URL (\"local\" for the offline embedder)")
}

func (f *connFlags) registerJudge(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.judgeURL, "judge-url", "", "Judge API base URL")
	cmd.Flags().StringVar(&f.judgeModel, "judge-model", "", "Judge model name")
}

// runWithApp builds the Fx app for the given flags and executes fn against the
// populated command runner. Construction errors surface before fn runs.
func runWithApp(f *connFlags, fn func(runner *cmdsfx.CommandRunner) error) error {
	var runErr error
	app := fx.New(
		appfx.Module,
		fx.NopLogger,
		fx.Supply(
			fx.Annotate(f.dbPath, fx.ResultTags(`name:"dbPath"`)),
			fx.Annotate(f.store, fx.ResultTags(`name:"store"`)),
			fx.Annotate(f.embedURL, fx.ResultTags(`name:"embedURL"`)),
			fx.Annotate(f.judgeURL, fx.ResultTags(`name:"judgeURL"`)),
			fx.Annotate(f.judgeModel, fx.ResultTags(`name:"judgeModel"`)),
			fx.Annotate(f.webAddr, fx.ResultTags(`name:"webAddr"`)),
		),
		fx.Invoke(func(runner *cmdsfx.CommandRunner) {
			runErr = fn(runner)
		}),
	)
	if err := app.Err(); err != nil {
		return err
	}
	return runErr
}

// NewRootCommand assembles the codesearch CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "codesearch",
		Short: "Semantic code search over a CodeSearchNet corpus",
	}
	rootCmd.AddCommand(
		NewIndexCommand(),
		NewSearchCommand(),
		NewWebCommand(),
		NewMCPCommand(),
	)
	return rootCmd
}
