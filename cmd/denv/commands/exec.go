package commands

import (
	"os"

	"github.com/spf13/cobra"
)

func (c *CLI) newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <dir> <command> [args...]",
		Short: "Run a command inside the directory's environment",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := c.app.Exec(
				cmd.Context(),
				args[0],
				args[1:],
				os.Stdin,
				cmd.OutOrStdout(),
				cmd.ErrOrStderr(),
			)
			if err != nil {
				return err
			}
			c.exitCode = code
			return nil
		},
	}
	// Everything after the command argument belongs to the child, including
	// its flags.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
