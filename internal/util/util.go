package util

import (
	"fmt"
	"path"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/keshon/lvc/internal/fs"
)

// WriteFileAtomic writes data to a temp file next to path and renames it into place.
func WriteFileAtomic(fsys fs.FS, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create dir %q: %w", dir, err)
	}

	tmpFile, tmpPath, err := fsys.CreateTempFile(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer fsys.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	return fsys.Rename(tmpPath, path)
}

// SortedKeys returns the keys of a map sorted alphabetically.
func SortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ListFiles walks root and returns every regular file as a sorted slash path
// relative to root. skip is consulted for each relative path (directories
// included); returning true prunes it. A missing root yields no files.
func ListFiles(fsys fs.FS, root string, skip func(rel string, isDir bool) bool) ([]string, error) {
	var out []string
	var walk func(dir, rel string) error
	walk = func(dir, rel string) error {
		entries, err := fsys.ReadDir(dir)
		if err != nil {
			if fsys.IsNotExist(err) && rel == "" {
				return nil
			}
			return fmt.Errorf("failed to read dir %q: %w", dir, err)
		}
		for _, e := range entries {
			childRel := path.Join(rel, e.Name())
			if skip != nil && skip(childRel, e.IsDir()) {
				continue
			}
			if e.IsDir() {
				if err := walk(filepath.Join(dir, e.Name()), childRel); err != nil {
					return err
				}
				continue
			}
			if e.Type().IsRegular() {
				out = append(out, childRel)
			}
		}
		return nil
	}
	if err := walk(root, ""); err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

// RemoveFile deletes root/rel, then removes parent directories it left
// empty, stopping at root. A missing file is not an error.
func RemoveFile(fsys fs.FS, root, rel string) error {
	target := filepath.Join(root, filepath.FromSlash(rel))
	if err := fsys.Remove(target); err != nil && !fsys.IsNotExist(err) {
		return fmt.Errorf("failed to remove %q: %w", target, err)
	}
	root = filepath.Clean(root)
	for dir := filepath.Dir(target); dir != root && len(dir) > len(root); dir = filepath.Dir(dir) {
		entries, err := fsys.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return nil
		}
		if err := fsys.Remove(dir); err != nil {
			return nil
		}
	}
	return nil
}

// WorkerCount returns the number of workers for concurrent operations.
func WorkerCount() int {
	return runtime.NumCPU()
}
