package commands

import (
	"github.com/jacobduba/sd18-isu/cmd/cmdsfx"
	"github.com/spf13/cobra"
)

func NewMCPCommand() *cobra.Command {
	var (
		flags     connFlags
		transport string
		address   string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server exposing the search tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(&flags, func(runner *cmdsfx.CommandRunner) error {
				return runner.RunMCPServer(transport, address)
			})
		},
	}

	flags.register(cmd)
	flags.registerJudge(cmd)
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport: stdio or http")
	cmd.Flags().StringVar(&address, "addr", "", "Listen address for the http transport")

	return cmd
}
