// Package app implements the application layer for denv.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"go.trai.ch/denv/internal/adapters/shell"
	"go.trai.ch/denv/internal/core/domain"
	"go.trai.ch/denv/internal/core/ports"
	"go.trai.ch/denv/internal/engine/session"
	"go.trai.ch/zerr"
)

// Components bundles the wired application pieces handed to main.
type Components struct {
	App    *App
	Logger ports.Logger
}

// App exposes the consumer-facing operations over the session manager.
// CLI invocations bind short-lived contexts; the watch command keeps one
// long-lived context per directory.
type App struct {
	sessions *session.Manager
	cache    ports.EntryCache
	watcher  ports.DirWatcher
	runner   *shell.Runner
	logger   ports.Logger

	outputMode  string
	nextContext atomic.Uint64
}

// New creates a new App instance.
func New(cache ports.EntryCache, watcher ports.DirWatcher, log ports.Logger) *App {
	return &App{
		sessions: session.NewManager(cache, log),
		cache:    cache,
		watcher:  watcher,
		runner:   shell.NewRunner(log),
		logger:   log,
	}
}

// WithOutputMode overrides output mode auto-detection ("interactive",
// "plain" or "auto").
func (a *App) WithOutputMode(mode string) *App {
	a.outputMode = mode
	return a
}

// Sessions returns the underlying context binding layer. Long-lived
// consumers (editor integrations) drive bindings through it directly.
func (a *App) Sessions() *session.Manager {
	return a.sessions
}

func (a *App) ephemeralContext(op string) string {
	return fmt.Sprintf("cli.%s.%d", op, a.nextContext.Add(1))
}

// StatusReport is the result of a status query.
type StatusReport struct {
	Status     domain.Status
	Diagnostic string
}

// Status binds a short-lived context for dir and reports its trust state.
func (a *App) Status(ctx context.Context, dir string) (StatusReport, error) {
	id := a.ephemeralContext("status")
	status, err := a.sessions.Bind(ctx, id, dir)
	if err != nil {
		return StatusReport{}, err
	}
	defer func() { _ = a.sessions.Unbind(id) }()

	diagnostic, err := a.sessions.Diagnostic(id)
	if err != nil {
		return StatusReport{}, err
	}
	return StatusReport{Status: status, Diagnostic: diagnostic}, nil
}

// Trust runs an allow, deny or reload operation for dir and reports the
// resulting state.
func (a *App) Trust(ctx context.Context, dir string, mode domain.Mode) (StatusReport, error) {
	id := a.ephemeralContext(string(mode))
	if _, err := a.sessions.Bind(ctx, id, dir); err != nil {
		return StatusReport{}, err
	}
	defer func() { _ = a.sessions.Unbind(id) }()

	var err error
	switch mode {
	case domain.ModeAllow:
		_, err = a.sessions.Allow(ctx, id)
	case domain.ModeDeny:
		_, err = a.sessions.Deny(ctx, id)
	default:
		_, err = a.sessions.Reload(ctx, id)
	}
	if err != nil {
		return StatusReport{}, err
	}

	status, err := a.sessions.Status(id)
	if err != nil {
		return StatusReport{}, err
	}
	diagnostic, err := a.sessions.Diagnostic(id)
	if err != nil {
		return StatusReport{}, err
	}
	return StatusReport{Status: status, Diagnostic: diagnostic}, nil
}

// Export binds a short-lived context for dir and writes its applied diff
// to w in the requested format ("shell" or "json"). A directory without
// configuration produces no output.
func (a *App) Export(ctx context.Context, dir, format string, w io.Writer) error {
	id := a.ephemeralContext("export")
	status, err := a.sessions.Bind(ctx, id, dir)
	if err != nil {
		return err
	}
	defer func() { _ = a.sessions.Unbind(id) }()

	if status == domain.StatusError {
		diagnostic, _ := a.sessions.Diagnostic(id)
		return zerr.With(zerr.New("environment not loaded: "+diagnostic), "dir", dir)
	}

	diff, err := a.sessions.Applied(id)
	if err != nil {
		return err
	}
	return renderDiff(w, diff, format)
}

// Exec runs argv inside dir's effective environment and returns the
// command's exit code. The environment seen by the command is exactly the
// base snapshot with the directory's diff applied.
func (a *App) Exec(ctx context.Context, dir string, argv []string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	id := a.ephemeralContext("exec")
	status, err := a.sessions.Bind(ctx, id, dir)
	if err != nil {
		return 0, err
	}
	defer func() { _ = a.sessions.Unbind(id) }()

	if status == domain.StatusError {
		diagnostic, _ := a.sessions.Diagnostic(id)
		return 0, zerr.With(zerr.New("environment not loaded: "+diagnostic), "dir", dir)
	}

	env, err := a.sessions.Environ(id)
	if err != nil {
		return 0, err
	}

	interactive := a.interactive(stdin, stdout)
	return a.runner.Run(ctx, dir, argv, env, stdin, stdout, stderr, interactive)
}

func (a *App) interactive(stdin io.Reader, stdout io.Writer) bool {
	inFile, inOK := stdin.(*os.File)
	outFile, outOK := stdout.(*os.File)
	if !inOK || !outOK {
		return false
	}
	return shell.Interactive(inFile, outFile)
}
