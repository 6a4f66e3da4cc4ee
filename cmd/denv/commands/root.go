// Package commands implements the CLI commands for denv.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/denv/internal/app"
	"go.trai.ch/denv/internal/build"
	"go.trai.ch/denv/internal/core/domain"
)

// CLI represents the command line interface for denv.
type CLI struct {
	app      Application
	rootCmd  *cobra.Command
	exitCode int
}

// Application represents the application logic interface.
type Application interface {
	Export(ctx context.Context, dir, format string, w io.Writer) error
	Exec(ctx context.Context, dir string, argv []string, stdin io.Reader, stdout, stderr io.Writer) (int, error)
	Trust(ctx context.Context, dir string, mode domain.Mode) (app.StatusReport, error)
	Status(ctx context.Context, dir string) (app.StatusReport, error)
	Watch(ctx context.Context, dirs []string, outputMode string, out io.Writer) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "denv",
		Short:         "A per-directory environment cache and loader frontend",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newExportCmd())
	rootCmd.AddCommand(c.newExecCmd())
	rootCmd.AddCommand(c.newTrustCmd(domain.ModeAllow, "allow", "Trust the directory's configuration and load its environment"))
	rootCmd.AddCommand(c.newTrustCmd(domain.ModeDeny, "deny", "Revoke trust for the directory's configuration"))
	rootCmd.AddCommand(c.newTrustCmd(domain.ModeQuery, "reload", "Force a fresh evaluation of the directory's environment"))
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// ExitCode returns the exit code recorded by commands that propagate a
// child process status. Zero unless an exec child exited non-zero.
func (c *CLI) ExitCode() int {
	return c.exitCode
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// targetDir resolves the directory argument, defaulting to the working
// directory.
func targetDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return os.Getwd()
}
