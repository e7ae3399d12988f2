package commands

import (
	"github.com/jacobduba/sd18-isu/cmd/cmdsfx"
	"github.com/spf13/cobra"
)

func NewWebCommand() *cobra.Command {
	var flags connFlags

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the HTML search front end",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(&flags, func(runner *cmdsfx.CommandRunner) error {
				return runner.RunWeb()
			})
		},
	}

	flags.register(cmd)
	flags.registerJudge(cmd)
	cmd.Flags().StringVar(&flags.webAddr, "addr", "", "Listen address (default :5000)")

	return cmd
}
