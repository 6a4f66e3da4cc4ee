package commands

import (
	"os"

	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [dirs...]",
		Short: "Watch directories and reload their environments on change",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := args
			if len(dirs) == 0 {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				dirs = []string{cwd}
			}
			outputMode, _ := cmd.Flags().GetString("output-mode")
			ci, _ := cmd.Flags().GetBool("ci")
			if ci {
				outputMode = "plain"
			}
			return c.app.Watch(cmd.Context(), dirs, outputMode, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, interactive, or plain")
	cmd.Flags().Bool("ci", false, "Use plain output mode (shorthand for --output-mode=plain)")
	return cmd
}
