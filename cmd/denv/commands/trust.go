package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/denv/internal/app"
	"go.trai.ch/denv/internal/core/domain"
)

// newTrustCmd builds the allow, deny and reload commands. All three bind
// the directory, run the trust operation and report the resulting state.
func (c *CLI) newTrustCmd(mode domain.Mode, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [dir]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := targetDir(args)
			if err != nil {
				return err
			}
			report, err := c.app.Trust(cmd.Context(), dir, mode)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), dir, report)
		},
	}
}

// printReport writes the status line shared by the trust and status
// commands. Error states carry the loader's diagnostic verbatim.
func printReport(out io.Writer, dir string, report app.StatusReport) error {
	line := fmt.Sprintf("%s\t%s", report.Status, dir)
	if report.Status == domain.StatusError && report.Diagnostic != "" {
		line += "\t" + report.Diagnostic
	}
	_, err := fmt.Fprintln(out, line)
	return err
}
