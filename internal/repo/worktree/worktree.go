// Package worktree reads and writes the user's files under the working tree root.
package worktree

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/keshon/lvc/internal/config"
	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/repo/object"
	"github.com/keshon/lvc/internal/util"
)

var (
	ErrOutsideRepository = errors.New("path is outside the repository")
	ErrReservedPath      = errors.New("path is inside the repository directory")
)

// Tree is the working directory of one repository.
type Tree struct {
	fs     fs.FS
	root   string
	ignore *Ignore
	code   uint64
}

// New returns the working tree at root hashing with multihash code.
func New(fsys fs.FS, root string, ignore *Ignore, code uint64) *Tree {
	return &Tree{fs: fsys, root: filepath.Clean(root), ignore: ignore, code: code}
}

// Root returns the working tree root.
func (t *Tree) Root() string { return t.root }

// Path returns the native path of the slash path rel.
func (t *Tree) Path(rel string) string {
	return filepath.Join(t.root, filepath.FromSlash(rel))
}

// Ignored reports whether rel is excluded from the repository.
func (t *Tree) Ignored(rel string) bool {
	return t.ignore.Match(rel, false)
}

// Files lists every visible regular file, sorted.
func (t *Tree) Files() ([]string, error) {
	return util.ListFiles(t.fs, t.root, t.ignore.Match)
}

// Exists reports whether rel is a regular file.
func (t *Tree) Exists(rel string) bool {
	info, err := t.fs.Stat(t.Path(rel))
	return err == nil && info.Mode().IsRegular()
}

func (t *Tree) Read(rel string) ([]byte, error) {
	data, err := t.fs.ReadFile(t.Path(rel))
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", rel, err)
	}
	return data, nil
}

// Write replaces rel with data, creating parent directories.
func (t *Tree) Write(rel string, data []byte) error {
	p := t.Path(rel)
	if err := t.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create dir for %q: %w", rel, err)
	}
	if err := t.fs.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", rel, err)
	}
	return nil
}

// Delete removes rel and any directories it leaves empty.
func (t *Tree) Delete(rel string) error {
	return util.RemoveFile(t.fs, t.root, rel)
}

// Digest returns the blob ID rel would be stored under, streaming the file.
func (t *Tree) Digest(rel string) (string, error) {
	rc, err := t.fs.Open(t.Path(rel))
	if err != nil {
		return "", fmt.Errorf("failed to open %q: %w", rel, err)
	}
	defer rc.Close()
	return object.DigestReader(t.code, object.KindBlob, rc)
}

// Rel converts a user-supplied path, relative to cwd or absolute, into a
// slash path relative to the working tree root.
func (t *Tree) Rel(cwd, p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(cwd, p)
	}
	rel, err := filepath.Rel(t.root, filepath.Clean(p))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutsideRepository, p)
	}
	rel = path.Clean(filepath.ToSlash(rel))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%w: %s", ErrOutsideRepository, p)
	}
	if err := CheckPath(rel); err != nil {
		return "", err
	}
	return rel, nil
}

// CheckPath rejects repository paths that name the reserved directory or
// anything below it.
func CheckPath(rel string) error {
	rel = path.Clean(filepath.ToSlash(rel))
	if rel == config.RepoDir || strings.HasPrefix(rel, config.RepoDir+"/") {
		return fmt.Errorf("%w: %s", ErrReservedPath, rel)
	}
	return nil
}
