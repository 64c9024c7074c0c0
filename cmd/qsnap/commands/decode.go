package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <url|payload>",
		Short: "Print the diagram encoded in a link as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Decode(cmd.OutOrStdout(), args[0])
		},
	}
}
