package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/util"
)

func TestWriteFileAtomicLeavesNoTemp(t *testing.T) {
	m := fs.NewMemoryFS()

	require.NoError(t, util.WriteFileAtomic(m, "/repo/.lvc/state.json", []byte(`{"current":"main"}`)))

	data, err := m.ReadFile("/repo/.lvc/state.json")
	require.NoError(t, err)
	assert.Equal(t, `{"current":"main"}`, string(data))

	entries, err := m.ReadDir("/repo/.lvc")
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file must not survive")
	assert.Equal(t, "state.json", entries[0].Name())
}

func TestWriteFileAtomicOverwrites(t *testing.T) {
	dir := t.TempDir()
	osfs := fs.NewOSFS()
	p := dir + "/f"

	require.NoError(t, util.WriteFileAtomic(osfs, p, []byte("one")))
	require.NoError(t, util.WriteFileAtomic(osfs, p, []byte("two")))

	data, err := osfs.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestListFiles(t *testing.T) {
	m := fs.NewMemoryFS()
	require.NoError(t, m.MkdirAll("/w/.lvc", 0o755))
	require.NoError(t, m.MkdirAll("/w/src/pkg", 0o755))
	require.NoError(t, m.WriteFile("/w/b.txt", nil, 0o644))
	require.NoError(t, m.WriteFile("/w/src/pkg/a.go", nil, 0o644))
	require.NoError(t, m.WriteFile("/w/.lvc/state.json", nil, 0o644))

	files, err := util.ListFiles(m, "/w", func(rel string, isDir bool) bool {
		return isDir && rel == ".lvc"
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt", "src/pkg/a.go"}, files)

	files, err = util.ListFiles(m, "/absent", nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, util.SortedKeys(map[string]int{"c": 1, "a": 2, "b": 3}))
}

func TestRemoveFilePrunesEmptyDirs(t *testing.T) {
	m := fs.NewMemoryFS()
	require.NoError(t, m.MkdirAll("/w/a/b/c", 0o755))
	require.NoError(t, m.WriteFile("/w/a/keep.txt", nil, 0o644))
	require.NoError(t, m.WriteFile("/w/a/b/c/f.txt", nil, 0o644))

	require.NoError(t, util.RemoveFile(m, "/w", "a/b/c/f.txt"))
	assert.False(t, m.Exists("/w/a/b"))
	assert.True(t, m.Exists("/w/a/keep.txt"))
	assert.True(t, m.IsDir("/w"))

	require.NoError(t, util.RemoveFile(m, "/w", "a/missing.txt"))
}
