package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/qsnap/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove artifacts no document links to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, _ := cmd.Flags().GetBool("all")

			wd, err := c.workDir()
			if err != nil {
				return err
			}
			return c.app.Clean(cmd.Context(), wd, app.CleanOptions{All: all})
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Remove every artifact and the cache file")

	return cmd
}
