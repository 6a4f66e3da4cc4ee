package domain_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/denv/internal/core/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name    string
		outcome domain.Outcome
		want    domain.Status
	}{
		{name: "Success Is On", outcome: domain.OutcomeSuccess, want: domain.StatusOn},
		{name: "NoChange Is None", outcome: domain.OutcomeNoChange, want: domain.StatusNone},
		{name: "Denied Is Error", outcome: domain.OutcomeDenied, want: domain.StatusError},
		{name: "Error Is Error", outcome: domain.OutcomeError, want: domain.StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.StatusFor(tt.outcome))
		})
	}
}

func TestNewEntry_DiffOnlyOnSuccess(t *testing.T) {
	base := domain.NewSnapshot(map[string]string{"PATH": "/bin"})
	diff := domain.Diff{"FOO": {Value: "bar"}}

	success := domain.NewEntry("/p", base, domain.Result{Outcome: domain.OutcomeSuccess, Diff: diff})
	require.NotNil(t, success.Diff)
	assert.Equal(t, diff, success.Diff)
	assert.False(t, success.ComputedAt.IsZero())

	// Failed invocations may carry a partial diff in the result; the entry
	// must not retain it.
	failed := domain.NewEntry("/p", base, domain.Result{
		Outcome: domain.OutcomeError,
		Diff:    diff,
		Message: "loader exploded",
	})
	assert.Nil(t, failed.Diff)
	assert.Equal(t, "loader exploded", failed.Message)
}

func TestEntry_Fresh(t *testing.T) {
	base := domain.NewSnapshot(map[string]string{"PATH": "/bin"})
	entry := domain.NewEntry("/p", base, domain.Result{Outcome: domain.OutcomeNoChange})

	assert.True(t, entry.Fresh(domain.NewSnapshot(map[string]string{"PATH": "/bin"})))
	assert.False(t, entry.Fresh(domain.NewSnapshot(map[string]string{"PATH": "/usr/bin"})))
	assert.False(t, entry.Fresh(domain.NewSnapshot(map[string]string{"PATH": "/bin", "X": "1"})))
}

func TestCanonicalKey(t *testing.T) {
	root := t.TempDir()
	real := filepath.Join(root, "project")
	require.NoError(t, os.Mkdir(real, 0o755))

	t.Run("Resolves Relative Path", func(t *testing.T) {
		t.Chdir(root)

		key, err := domain.CanonicalKey("project")
		require.NoError(t, err)
		resolved, err := filepath.EvalSymlinks(real)
		require.NoError(t, err)
		assert.Equal(t, resolved, key)
	})

	t.Run("Symlink And Target Share Key", func(t *testing.T) {
		link := filepath.Join(root, "link")
		require.NoError(t, os.Symlink(real, link))

		fromLink, err := domain.CanonicalKey(link)
		require.NoError(t, err)
		fromReal, err := domain.CanonicalKey(real)
		require.NoError(t, err)
		assert.Equal(t, fromReal, fromLink)
	})

	t.Run("Missing Directory", func(t *testing.T) {
		_, err := domain.CanonicalKey(filepath.Join(root, "nope"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrDirectoryNotFound))
	})

	t.Run("Regular File", func(t *testing.T) {
		file := filepath.Join(root, "file.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

		_, err := domain.CanonicalKey(file)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotADirectory))
	})
}
