package repo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/repo"
)

func TestAddCommitRemove(t *testing.T) {
	r := initRepo(t, fs.NewMemoryFS(), "/w")

	c1 := commitFiles(t, r, "c1", map[string]string{"f.txt": "hello"})
	assert.Equal(t, []string{"f.txt"}, c1.Paths())

	require.NoError(t, r.Remove("f.txt"))
	assert.False(t, r.Tree.Exists("f.txt"))
	assert.True(t, r.Stage.IsRemoved("f.txt"))

	c2, err := r.Commit("c2")
	require.NoError(t, err)
	assert.False(t, c2.Tracks("f.txt"))
	assert.Equal(t, c1.ID, c2.Parent)
	assert.False(t, r.Tree.Exists("f.txt"))

	empty, err := r.Stage.Empty()
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestAddMissingFile(t *testing.T) {
	r := initRepo(t, fs.NewMemoryFS(), "/w")
	assert.ErrorIs(t, r.Add("ghost.txt"), repo.ErrFileNotFound)
}

func TestAddUnchangedUnstages(t *testing.T) {
	r := initRepo(t, fs.NewMemoryFS(), "/w")
	commitFiles(t, r, "c1", map[string]string{"f.txt": "v1"})

	write(t, r, "f.txt", "v2")
	require.NoError(t, r.Add("f.txt"))
	assert.True(t, r.Stage.IsStaged("f.txt"))

	write(t, r, "f.txt", "v1")
	require.NoError(t, r.Add("f.txt"))
	assert.False(t, r.Stage.IsStaged("f.txt"))

	_, err := r.Commit("nothing")
	assert.ErrorIs(t, err, repo.ErrNothingToCommit)
}

func TestAddClearsTombstone(t *testing.T) {
	r := initRepo(t, fs.NewMemoryFS(), "/w")
	commitFiles(t, r, "c1", map[string]string{"f.txt": "v1"})

	require.NoError(t, r.Remove("f.txt"))
	write(t, r, "f.txt", "v1")
	require.NoError(t, r.Add("f.txt"))

	assert.False(t, r.Stage.IsRemoved("f.txt"))
	assert.False(t, r.Stage.IsStaged("f.txt"))
}

func TestRemoveStagedOnly(t *testing.T) {
	r := initRepo(t, fs.NewMemoryFS(), "/w")
	write(t, r, "new.txt", "n")
	require.NoError(t, r.Add("new.txt"))

	require.NoError(t, r.Remove("new.txt"))
	assert.False(t, r.Stage.IsStaged("new.txt"))
	assert.False(t, r.Stage.IsRemoved("new.txt"))
	assert.True(t, r.Tree.Exists("new.txt"), "untracked working copy is kept")

	assert.ErrorIs(t, r.Remove("new.txt"), repo.ErrNothingToRemove)
}

func TestCommitPreconditions(t *testing.T) {
	r := initRepo(t, fs.NewMemoryFS(), "/w")

	_, err := r.Commit("empty stage")
	assert.ErrorIs(t, err, repo.ErrNothingToCommit)

	write(t, r, "f.txt", "x")
	require.NoError(t, r.Add("f.txt"))
	_, err = r.Commit("")
	assert.ErrorIs(t, err, repo.ErrEmptyCommit)
	assert.True(t, r.Stage.IsStaged("f.txt"), "failed commit keeps the stage")
}

func TestCommitNestedPaths(t *testing.T) {
	r := initRepo(t, fs.NewMemoryFS(), "/w")
	c := commitFiles(t, r, "nested", map[string]string{
		"src/main.go":      "package main",
		"src/util/util.go": "package util",
		"README":           "readme",
	})
	assert.Equal(t, []string{"README", "src/main.go", "src/util/util.go"}, c.Paths())
}

func TestRepositoryDirectoryIsNotTracked(t *testing.T) {
	m := fs.NewMemoryFS()
	r := initRepo(t, m, "/w")
	c1 := commitFiles(t, r, "c1", map[string]string{"f.txt": "v1"})
	settings := read(t, r, ".lvc/config.yaml")

	assert.ErrorIs(t, r.Add(".lvc/config.yaml"), repo.ErrReservedPath)
	assert.ErrorIs(t, r.Add(".lvc"), repo.ErrReservedPath)
	assert.ErrorIs(t, r.Remove(".lvc/config.yaml"), repo.ErrReservedPath)
	assert.ErrorIs(t, r.CheckoutPath(c1.ID, ".lvc/config.yaml"), repo.ErrReservedPath)

	assert.Equal(t, settings, read(t, r, ".lvc/config.yaml"))
	assert.False(t, r.Stage.IsStaged(".lvc/config.yaml"))
	assert.False(t, r.Stage.IsRemoved(".lvc/config.yaml"))
	empty, err := r.Stage.Empty()
	require.NoError(t, err)
	assert.True(t, empty)

	_, err = repo.Open("/w", repo.WithFS(m))
	require.NoError(t, err)
}
