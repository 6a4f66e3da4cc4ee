package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [dir]",
		Short: "Print the directory's environment diff for shell evaluation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := targetDir(args)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			return c.app.Export(cmd.Context(), dir, format, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringP("format", "f", "shell", "Output format: shell or json")
	return cmd
}
