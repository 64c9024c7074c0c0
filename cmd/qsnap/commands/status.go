package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/qsnap/internal/ui/output"
	"go.trai.ch/qsnap/internal/ui/style"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [documents...]",
		Short: "List diagram references and whether they are rendered",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := c.workDir()
			if err != nil {
				return err
			}
			entries, err := c.app.Status(cmd.Context(), wd, args)
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), entries)
			return nil
		},
	}
}

// printStatus writes one line per reference, grouped under its document.
func printStatus(w io.Writer, entries []domain.ReferenceStatus) {
	text := style.NewText(output.NewRenderer(w))
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, text.Muted.Render("no diagram references"))
		return
	}

	current := ""
	for _, e := range entries {
		if e.Document != current {
			current = e.Document
			_, _ = fmt.Fprintln(w, text.Path.Render(current))
		}

		var icon, detail string
		switch e.State {
		case domain.StateRendered:
			icon = text.Success.Render(style.Check)
			detail = style.Arrow + " " + e.ArtifactPath
		case domain.StateStale:
			icon = text.Failure.Render(style.Warning)
			detail = style.Arrow + " " + e.ArtifactPath + " (missing)"
		default:
			icon = text.Pending.Render(style.Circle)
			detail = "pending"
			if e.Cached {
				detail = "pending, cached " + style.Arrow + " " + e.ArtifactPath
			}
		}
		_, _ = fmt.Fprintf(w, "  %s %s %s\n", icon, e.URL, text.Muted.Render(detail))
	}
}
