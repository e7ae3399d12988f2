package commands

import (
	"fmt"

	"github.com/jacobduba/sd18-isu/cmd/cmdsfx"
	"github.com/spf13/cobra"
)

func NewIndexCommand() *cobra.Command {
	var (
		flags      connFlags
		corpusPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the embedding index from a CodeSearchNet JSONL export",
		RunE: func(cmd *cobra.Command, args []string) error {
			if corpusPath == "" {
				return fmt.Errorf("--corpus is required")
			}
			return runWithApp(&flags, func(runner *cmdsfx.CommandRunner) error {
				return runner.RunIndex(cmd.Context(), corpusPath, limit)
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&corpusPath, "corpus", "", "Path to corpus JSONL file (.gz supported)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Only index the first N records (0 = all)")

	return cmd
}
