package commands

import (
	"github.com/jacobduba/sd18-isu/cmd/cmdsfx"
	"github.com/jacobduba/sd18-isu/internal/constants"
	"github.com/spf13/cobra"
)

func NewSearchCommand() *cobra.Command {
	var (
		flags    connFlags
		topK     int
		noRerank bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the index with a natural language description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(&flags, func(runner *cmdsfx.CommandRunner) error {
				return runner.RunSearch(cmd.Context(), args[0], topK, !noRerank)
			})
		},
	}

	flags.register(cmd)
	flags.registerJudge(cmd)
	cmd.Flags().IntVar(&topK, "top-k", constants.DefaultTopK, "Top K results")
	cmd.Flags().BoolVar(&noRerank, "no-rerank", false, "Skip the judge re-ranking pass")

	return cmd
}
