package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-render documents whenever they are saved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wd, err := c.workDir()
			if err != nil {
				return err
			}
			return c.app.Watch(cmd.Context(), wd)
		},
	}
}
