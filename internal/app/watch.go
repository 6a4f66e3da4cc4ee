package app

import (
	"context"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"go.trai.ch/denv/internal/adapters/detector"
	"go.trai.ch/denv/internal/adapters/tui"
	"go.trai.ch/denv/internal/core/domain"
	"go.trai.ch/zerr"
)

// Watch binds a long-lived context per directory, reloads a directory's
// environment whenever its configuration file changes, and reports status
// transitions. In interactive mode a live view is rendered to out; in plain
// mode transitions are logged line by line.
func (a *App) Watch(ctx context.Context, dirs []string, outputMode string, out io.Writer) error {
	if len(dirs) == 0 {
		return zerr.New("no directories to watch")
	}

	// Quitting the view must tear down the whole group, not just its own
	// goroutine.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	publish := a.startView(ctx, outputMode, out)
	contexts := make(map[string][]string)

	for i, dir := range dirs {
		id := fmt.Sprintf("watch.%d", i)
		status, err := a.sessions.Bind(ctx, id, dir)
		if err != nil {
			publish.stop()
			return zerr.With(zerr.Wrap(err, "failed to bind directory"), "dir", dir)
		}
		defer func() { _ = a.sessions.Unbind(id) }()

		key, err := a.sessions.DirectoryKey(id)
		if err != nil {
			publish.stop()
			return err
		}
		if err := a.watcher.Add(key); err != nil {
			publish.stop()
			return zerr.With(zerr.Wrap(err, "failed to watch directory"), "dir", key)
		}

		contexts[key] = append(contexts[key], id)
		diagnostic, _ := a.sessions.Diagnostic(id)
		publish.send(key, status, diagnostic)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		return a.watcher.Close()
	})

	g.Go(func() error {
		for key := range a.watcher.Events() {
			a.logger.Info("configuration changed in " + key)
			a.cache.Invalidate(key)

			// Each bound context pulls the replacement on its own
			// re-lookup; concurrent pulls coalesce in the cache.
			for _, id := range contexts[key] {
				status, err := a.sessions.Bind(ctx, id, key)
				if err != nil {
					a.logger.Error(err)
					continue
				}
				diagnostic, _ := a.sessions.Diagnostic(id)
				publish.send(key, status, diagnostic)
			}
		}
		publish.stop()
		return nil
	})

	g.Go(func() error {
		defer cancel()
		return publish.wait()
	})

	return g.Wait()
}

// view decouples status publication from rendering. Interactive mode feeds
// a bubbletea program; plain mode writes one line per transition. send is
// ordered: updates for a key are rendered in publication order.
type view struct {
	send func(key string, status domain.Status, message string)
	stop func()
	wait func() error
}

func (a *App) startView(ctx context.Context, outputMode string, out io.Writer) *view {
	if outputMode == "" {
		outputMode = a.outputMode
	}
	mode := detector.ResolveMode(detector.DetectEnvironment(), outputMode)
	if mode != detector.ModeInteractive {
		return a.startPlainView(out)
	}
	return a.startInteractiveView(ctx, out)
}

// startPlainView writes one tab-separated line per transition. wait blocks
// until stop so the caller's shutdown is driven by the event loop in both
// modes.
func (a *App) startPlainView(out io.Writer) *view {
	done := make(chan struct{})
	var once sync.Once

	return &view{
		send: func(key string, status domain.Status, message string) {
			line := fmt.Sprintf("%s\t%s", status, key)
			if message != "" {
				line += "\t" + message
			}
			_, _ = fmt.Fprintln(out, line)
		},
		stop: func() { once.Do(func() { close(done) }) },
		wait: func() error {
			<-done
			return nil
		},
	}
}

// startInteractiveView runs the bubbletea program. Updates are forwarded
// through a single buffered channel so they reach the program in order even
// before Run has started consuming.
func (a *App) startInteractiveView(ctx context.Context, out io.Writer) *view {
	program := tea.NewProgram(
		tui.NewModel(),
		tea.WithContext(ctx),
		tea.WithOutput(out),
	)

	updates := make(chan tui.DirStatusMsg, eventBacklog)
	go func() {
		for msg := range updates {
			program.Send(msg)
		}
	}()

	var once sync.Once
	return &view{
		send: func(key string, status domain.Status, message string) {
			updates <- tui.DirStatusMsg{Key: key, Status: status, Message: message}
		},
		stop: func() {
			once.Do(func() {
				close(updates)
				program.Quit()
			})
		},
		wait: func() error {
			if _, err := program.Run(); err != nil && ctx.Err() == nil {
				return zerr.Wrap(err, "watch view failed")
			}
			return nil
		},
	}
}

// eventBacklog bounds pending view updates while the program starts up.
const eventBacklog = 64
