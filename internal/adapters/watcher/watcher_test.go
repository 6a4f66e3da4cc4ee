package watcher_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/denv/internal/adapters/watcher"
	"go.trai.ch/denv/internal/core/domain"
	"go.trai.ch/denv/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newTestWatcher(t *testing.T, watchFile string) *watcher.Watcher {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	w, err := watcher.New(watchFile, log)
	require.NoError(t, err)
	return w
}

func waitForKey(t *testing.T, events <-chan string, want string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case got, ok := <-events:
			require.True(t, ok, "event channel closed")
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("no event for %s", want)
		}
	}
}

func TestWatcher_ReportsConfigFileWrite(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, ".envrc")
	defer func() { _ = w.Close() }()

	require.NoError(t, w.Add(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".envrc"), []byte("export FOO=bar\n"), 0o600))
	waitForKey(t, w.Events(), dir)
}

func TestWatcher_ReportsConfigFileRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".envrc")
	require.NoError(t, os.WriteFile(path, []byte("export FOO=bar\n"), 0o600))

	w := newTestWatcher(t, ".envrc")
	defer func() { _ = w.Close() }()

	require.NoError(t, w.Add(dir))
	require.NoError(t, os.Remove(path))
	waitForKey(t, w.Events(), dir)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, ".envrc")
	defer func() { _ = w.Close() }()

	require.NoError(t, w.Add(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hi\n"), 0o600))

	select {
	case key, ok := <-w.Events():
		if ok {
			t.Fatalf("unexpected event for %s", key)
		}
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_AddAfterClose(t *testing.T) {
	w := newTestWatcher(t, ".envrc")
	require.NoError(t, w.Close())

	err := w.Add(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrWatcherClosed))
}

func TestWatcher_CloseIsIdempotentAndEndsEvents(t *testing.T) {
	w := newTestWatcher(t, ".envrc")

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("event channel not closed")
	}
}

func TestWatcher_DuplicateAddIsNoOp(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, ".envrc")
	defer func() { _ = w.Close() }()

	require.NoError(t, w.Add(dir))
	require.NoError(t, w.Add(dir))
}
