package fs_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/lvc/internal/fs"
)

func TestOSFS_OpenMapped(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "big.bin")
	require.NoError(t, os.WriteFile(p, []byte("mapped content"), 0o644))

	rc, err := fs.NewOSFS().Open(p)
	require.NoError(t, err)
	defer rc.Close()

	_, err = rc.Seek(7, io.SeekStart)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestOSFS_OpenEmptyFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(p, nil, 0o644))

	rc, err := fs.NewOSFS().Open(p)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestOSFS_OpenMissing(t *testing.T) {
	osfs := fs.NewOSFS()
	_, err := osfs.Open(filepath.Join(t.TempDir(), "nope"))
	assert.True(t, osfs.IsNotExist(err))
}

func TestOSFS_CreateTempFile(t *testing.T) {
	dir := t.TempDir()
	osfs := fs.NewOSFS()

	wc, name, err := osfs.CreateTempFile(dir, "tmp-*")
	require.NoError(t, err)
	_, err = wc.Write([]byte("abc"))
	require.NoError(t, err)
	require.NoError(t, wc.Close())

	assert.Equal(t, dir, filepath.Dir(name))
	data, err := osfs.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}

func TestOSFS_Hooks(t *testing.T) {
	origRead := fs.GetReadFile()
	defer fs.SetReadFile(origRead)
	origStat := fs.GetStat()
	defer fs.SetStat(origStat)

	fs.SetReadFile(func(path string) ([]byte, error) {
		assert.Equal(t, "x", path)
		return []byte("hooked"), nil
	})
	fs.SetStat(func(string) (os.FileInfo, error) {
		return nil, errors.New("stat-failed")
	})

	osfs := fs.NewOSFS()
	out, err := osfs.ReadFile("x")
	require.NoError(t, err)
	assert.Equal(t, "hooked", string(out))

	_, err = osfs.Stat("zzz")
	assert.EqualError(t, err, "stat-failed")
	assert.False(t, osfs.Exists("zzz"))
	assert.False(t, osfs.IsDir("zzz"))
}

func TestOSFS_OpenHook(t *testing.T) {
	orig := fs.GetOpen()
	defer fs.SetOpen(orig)

	var opened []string
	fs.SetOpen(func(path string) (io.ReadSeekCloser, error) {
		opened = append(opened, filepath.Base(path))
		return orig(path)
	})

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "full"), []byte("abc"), 0o644))

	osfs := fs.NewOSFS()
	for name, want := range map[string]string{"empty": "", "full": "abc"} {
		rc, err := osfs.Open(filepath.Join(dir, name))
		require.NoError(t, err, name)
		data, err := io.ReadAll(rc)
		require.NoError(t, err, name)
		assert.Equal(t, want, string(data), name)
		require.NoError(t, rc.Close(), name)
	}
	assert.ElementsMatch(t, []string{"empty", "full"}, opened)

	fs.SetOpen(func(string) (io.ReadSeekCloser, error) { return nil, errors.New("open-failed") })
	_, err := osfs.Open(filepath.Join(dir, "full"))
	assert.EqualError(t, err, "open-failed")
}
