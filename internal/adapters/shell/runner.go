// Package shell runs commands under a directory's effective environment.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"go.trai.ch/denv/internal/core/domain"
	"go.trai.ch/denv/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner executes commands with an explicit environment, allocating a PTY
// when the caller requests interactive mode.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes argv in dir with env as the complete process environment.
// It returns the command's exit code. A non-zero exit is reported via the
// exit code, not as an error; errors cover spawn failures only.
func (r *Runner) Run(
	ctx context.Context,
	dir string,
	argv []string,
	env domain.Snapshot,
	stdin io.Reader,
	stdout, stderr io.Writer,
	interactive bool,
) (int, error) {
	if len(argv) == 0 {
		return 0, domain.ErrNoCommand
	}

	r.logger.Info("exec " + argv[0] + " in " + dir)

	//nolint:gosec // user provided command
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = env

	if interactive {
		return r.runPTY(cmd, stdin, stdout)
	}

	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return exitCode(err)
	}
	return 0, nil
}

// runPTY starts the command under a pseudo-terminal and bridges its IO.
// The PTY merges stdout and stderr, matching what the command would see in
// a real terminal.
func (r *Runner) runPTY(cmd *exec.Cmd, stdin io.Reader, stdout io.Writer) (int, error) {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return 0, zerr.Wrap(err, "failed to start pty")
	}

	go func() {
		_, _ = io.Copy(ptmx, stdin)
	}()

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		_, _ = io.Copy(stdout, ptmx)
	}()

	err = cmd.Wait()
	_ = ptmx.Close()
	<-ioDone

	if err != nil {
		return exitCode(err)
	}
	return 0, nil
}

// exitCode extracts the process exit code from a Wait error. Anything that
// is not an exit status is a spawn-level failure.
func exitCode(err error) (int, error) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, zerr.Wrap(errors.Join(domain.ErrExecFailed, err), "command failed")
}

// Interactive reports whether stdin and stdout are both terminals, making
// PTY allocation worthwhile.
func Interactive(stdin, stdout *os.File) bool {
	return isTerminal(stdin) && isTerminal(stdout)
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
