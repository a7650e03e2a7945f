package stage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/lvc/internal/config"
	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/repo/stage"
)

func newArea(t *testing.T) (*stage.Area, *fs.MemoryFS, *config.RepoConfig) {
	t.Helper()
	m := fs.NewMemoryFS()
	cfg := config.NewRepoConfig("/w")
	require.NoError(t, m.MkdirAll(cfg.StagedDir(), 0o755))
	require.NoError(t, m.MkdirAll(cfg.RemovedDir(), 0o755))
	return stage.New(m, cfg), m, cfg
}

func TestAddAndUnstage(t *testing.T) {
	a, m, cfg := newArea(t)

	require.NoError(t, a.Add("dir/sub/f.txt", []byte("v1")))
	require.NoError(t, a.Add("top.txt", []byte("t")))
	assert.True(t, a.IsStaged("dir/sub/f.txt"))

	staged, err := a.Staged()
	require.NoError(t, err)
	assert.Equal(t, []string{"dir/sub/f.txt", "top.txt"}, staged)

	data, err := a.StagedContent("dir/sub/f.txt")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))

	require.NoError(t, a.Unstage("dir/sub/f.txt"))
	assert.False(t, a.IsStaged("dir/sub/f.txt"))
	assert.False(t, m.Exists(cfg.StagedDir()+"/dir"), "empty dirs are pruned")
	assert.True(t, m.IsDir(cfg.StagedDir()))
}

func TestTombstones(t *testing.T) {
	a, _, _ := newArea(t)

	require.NoError(t, a.MarkRemoved("gone.txt"))
	assert.True(t, a.IsRemoved("gone.txt"))

	removed, err := a.Removed()
	require.NoError(t, err)
	assert.Equal(t, []string{"gone.txt"}, removed)

	require.NoError(t, a.Unremove("gone.txt"))
	assert.False(t, a.IsRemoved("gone.txt"))
}

func TestChangesAndClear(t *testing.T) {
	a, _, _ := newArea(t)

	empty, err := a.Empty()
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, a.Add("a.txt", []byte("a")))
	require.NoError(t, a.MarkRemoved("b.txt"))

	changes, err := a.Changes()
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a.txt": []byte("a")}, changes.Adds)
	assert.Equal(t, []string{"b.txt"}, changes.Removes)

	require.NoError(t, a.Clear())
	empty, err = a.Empty()
	require.NoError(t, err)
	assert.True(t, empty)
}
