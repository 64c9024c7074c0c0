package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [documents...]",
		Short: "Render diagram references and link them into documents",
		Long: "Render every diagram reference in the named documents, or in every document " +
			"matched by the configuration when none is named, and replace each reference " +
			"with an image link to the rendered artifact.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := c.workDir()
			if err != nil {
				return err
			}
			_, err = c.app.Run(cmd.Context(), wd, args)
			return err
		},
	}
}
