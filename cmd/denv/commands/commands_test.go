package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/denv/cmd/denv/commands"
	"go.trai.ch/denv/internal/app"
	"go.trai.ch/denv/internal/core/domain"
)

type mockApp struct {
	exportFunc func(ctx context.Context, dir, format string, w io.Writer) error
	execFunc   func(ctx context.Context, dir string, argv []string) (int, error)
	trustFunc  func(ctx context.Context, dir string, mode domain.Mode) (app.StatusReport, error)
	statusFunc func(ctx context.Context, dir string) (app.StatusReport, error)
	watchFunc  func(ctx context.Context, dirs []string, outputMode string) error
}

func (m *mockApp) Export(ctx context.Context, dir, format string, w io.Writer) error {
	if m.exportFunc != nil {
		return m.exportFunc(ctx, dir, format, w)
	}
	return nil
}

func (m *mockApp) Exec(ctx context.Context, dir string, argv []string, _ io.Reader, _, _ io.Writer) (int, error) {
	if m.execFunc != nil {
		return m.execFunc(ctx, dir, argv)
	}
	return 0, nil
}

func (m *mockApp) Trust(ctx context.Context, dir string, mode domain.Mode) (app.StatusReport, error) {
	if m.trustFunc != nil {
		return m.trustFunc(ctx, dir, mode)
	}
	return app.StatusReport{Status: domain.StatusOn}, nil
}

func (m *mockApp) Status(ctx context.Context, dir string) (app.StatusReport, error) {
	if m.statusFunc != nil {
		return m.statusFunc(ctx, dir)
	}
	return app.StatusReport{Status: domain.StatusNone}, nil
}

func (m *mockApp) Watch(ctx context.Context, dirs []string, outputMode string, _ io.Writer) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, dirs, outputMode)
	}
	return nil
}

func newTestCLI(mock *mockApp, args ...string) (*commands.CLI, *bytes.Buffer) {
	cli := commands.New(mock)
	cli.SetArgs(args)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	return cli, buf
}

func TestCommands_Export(t *testing.T) {
	t.Run("wires dir and format", func(t *testing.T) {
		var gotDir, gotFormat string
		mock := &mockApp{
			exportFunc: func(_ context.Context, dir, format string, _ io.Writer) error {
				gotDir, gotFormat = dir, format
				return nil
			},
		}

		cli, _ := newTestCLI(mock, "export", "/project", "--format", "json")
		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "/project", gotDir)
		assert.Equal(t, "json", gotFormat)
	})

	t.Run("defaults dir to cwd", func(t *testing.T) {
		var gotDir string
		mock := &mockApp{
			exportFunc: func(_ context.Context, dir, _ string, _ io.Writer) error {
				gotDir = dir
				return nil
			},
		}

		cli, _ := newTestCLI(mock, "export")
		require.NoError(t, cli.Execute(context.Background()))

		cwd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, cwd, gotDir)
	})

	t.Run("propagates error", func(t *testing.T) {
		mock := &mockApp{
			exportFunc: func(context.Context, string, string, io.Writer) error {
				return errors.New("simulated error")
			},
		}

		cli, _ := newTestCLI(mock, "export", "/project")
		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Exec(t *testing.T) {
	t.Run("passes argv and records exit code", func(t *testing.T) {
		var gotDir string
		var gotArgv []string
		mock := &mockApp{
			execFunc: func(_ context.Context, dir string, argv []string) (int, error) {
				gotDir, gotArgv = dir, argv
				return 3, nil
			},
		}

		cli, _ := newTestCLI(mock, "exec", "/project", "make", "test")
		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "/project", gotDir)
		assert.Equal(t, []string{"make", "test"}, gotArgv)
		assert.Equal(t, 3, cli.ExitCode())
	})

	t.Run("requires dir and command", func(t *testing.T) {
		cli, _ := newTestCLI(&mockApp{}, "exec", "/project")
		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_TrustModes(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		wantMode domain.Mode
	}{
		{name: "allow", command: "allow", wantMode: domain.ModeAllow},
		{name: "deny", command: "deny", wantMode: domain.ModeDeny},
		{name: "reload", command: "reload", wantMode: domain.ModeQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMode domain.Mode
			mock := &mockApp{
				trustFunc: func(_ context.Context, _ string, mode domain.Mode) (app.StatusReport, error) {
					gotMode = mode
					return app.StatusReport{Status: domain.StatusOn}, nil
				},
			}

			cli, buf := newTestCLI(mock, tt.command, "/project")
			require.NoError(t, cli.Execute(context.Background()))
			assert.Equal(t, tt.wantMode, gotMode)
			assert.Contains(t, buf.String(), "on\t/project")
		})
	}
}

func TestCommands_Status(t *testing.T) {
	mock := &mockApp{
		statusFunc: func(context.Context, string) (app.StatusReport, error) {
			return app.StatusReport{
				Status:     domain.StatusError,
				Diagnostic: "line 3: command not found",
			}, nil
		},
	}

	cli, buf := newTestCLI(mock, "status", "/project")
	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "error\t/project\tline 3: command not found")
}

func TestCommands_Watch(t *testing.T) {
	t.Run("passes directories", func(t *testing.T) {
		var gotDirs []string
		mock := &mockApp{
			watchFunc: func(_ context.Context, dirs []string, _ string) error {
				gotDirs = dirs
				return nil
			},
		}

		cli, _ := newTestCLI(mock, "watch", "/a", "/b")
		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []string{"/a", "/b"}, gotDirs)
	})

	t.Run("ci flag forces plain mode", func(t *testing.T) {
		var gotMode string
		mock := &mockApp{
			watchFunc: func(_ context.Context, _ []string, outputMode string) error {
				gotMode = outputMode
				return nil
			},
		}

		cli, _ := newTestCLI(mock, "watch", "/a", "--ci")
		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "plain", gotMode)
	})
}

func TestCommands_Version(t *testing.T) {
	cli, buf := newTestCLI(&mockApp{}, "version")
	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "denv version")
}
