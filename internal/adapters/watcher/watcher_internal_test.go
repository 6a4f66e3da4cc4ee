package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/denv/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// TestProcessEvents_DrainsErrorChannel verifies that a filesystem error is
// consumed and logged, and that event delivery keeps working afterwards. An
// unread fsnotify error would otherwise block its delivery goroutine and
// stall the watcher for good.
func TestProcessEvents_DrainsErrorChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	warned := make(chan string, 1)
	log.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		select {
		case warned <- msg:
		default:
		}
	}).MinTimes(1)

	w, err := New(".envrc", log)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	dir := t.TempDir()
	require.NoError(t, w.Add(dir))

	w.fsWatcher.Errors <- errors.New("event queue overflowed")

	select {
	case msg := <-warned:
		require.Contains(t, msg, "event queue overflowed")
	case <-time.After(5 * time.Second):
		t.Fatal("error was not logged")
	}

	// The watcher still delivers configuration change events.
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".envrc"), []byte("export FOO=bar\n"), 0o600))
	select {
	case key := <-w.Events():
		require.Equal(t, dir, key)
	case <-time.After(5 * time.Second):
		t.Fatal("no event after error")
	}
}
