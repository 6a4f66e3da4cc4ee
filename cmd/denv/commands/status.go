package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [dir]",
		Short: "Report the directory's trust state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := targetDir(args)
			if err != nil {
				return err
			}
			report, err := c.app.Status(cmd.Context(), dir)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), dir, report)
		},
	}
}
