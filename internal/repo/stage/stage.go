// Package stage keeps pending adds and removals between commits.
// Adds are copies of the file bytes under staged/<path>; removals are empty
// tombstones under removed/<path>.
package stage

import (
	"fmt"
	"path/filepath"

	"github.com/keshon/lvc/internal/config"
	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/repo/meta"
	"github.com/keshon/lvc/internal/util"
)

// Area is the staging area of one repository.
type Area struct {
	fs         fs.FS
	stagedDir  string
	removedDir string
}

func New(fsys fs.FS, cfg *config.RepoConfig) *Area {
	return &Area{fs: fsys, stagedDir: cfg.StagedDir(), removedDir: cfg.RemovedDir()}
}

func join(dir, path string) string { return filepath.Join(dir, filepath.FromSlash(path)) }

// Add records data as the pending content of path.
func (a *Area) Add(path string, data []byte) error {
	if err := util.WriteFileAtomic(a.fs, join(a.stagedDir, path), data); err != nil {
		return fmt.Errorf("failed to stage %q: %w", path, err)
	}
	return nil
}

// Unstage drops a pending add.
func (a *Area) Unstage(path string) error {
	return util.RemoveFile(a.fs, a.stagedDir, path)
}

// IsStaged reports whether path has a pending add.
func (a *Area) IsStaged(path string) bool {
	return a.fs.Exists(join(a.stagedDir, path))
}

// StagedContent returns the pending bytes of path.
func (a *Area) StagedContent(path string) ([]byte, error) {
	return a.fs.ReadFile(join(a.stagedDir, path))
}

// MarkRemoved records a tombstone for path.
func (a *Area) MarkRemoved(path string) error {
	if err := util.WriteFileAtomic(a.fs, join(a.removedDir, path), nil); err != nil {
		return fmt.Errorf("failed to mark %q removed: %w", path, err)
	}
	return nil
}

// Unremove clears a tombstone.
func (a *Area) Unremove(path string) error {
	return util.RemoveFile(a.fs, a.removedDir, path)
}

// IsRemoved reports whether path has a tombstone.
func (a *Area) IsRemoved(path string) bool {
	return a.fs.Exists(join(a.removedDir, path))
}

// Staged returns the pending add paths, sorted.
func (a *Area) Staged() ([]string, error) {
	return util.ListFiles(a.fs, a.stagedDir, nil)
}

// Removed returns the tombstoned paths, sorted.
func (a *Area) Removed() ([]string, error) {
	return util.ListFiles(a.fs, a.removedDir, nil)
}

// Changes reads the whole area as commit input.
func (a *Area) Changes() (meta.Changes, error) {
	staged, err := a.Staged()
	if err != nil {
		return meta.Changes{}, err
	}
	removed, err := a.Removed()
	if err != nil {
		return meta.Changes{}, err
	}
	adds := make(map[string][]byte, len(staged))
	for _, p := range staged {
		data, err := a.StagedContent(p)
		if err != nil {
			return meta.Changes{}, fmt.Errorf("failed to read staged %q: %w", p, err)
		}
		adds[p] = data
	}
	return meta.Changes{Adds: adds, Removes: removed}, nil
}

// Empty reports whether nothing is staged.
func (a *Area) Empty() (bool, error) {
	paths, err := a.paths()
	if err != nil {
		return false, err
	}
	return len(paths) == 0, nil
}

func (a *Area) paths() ([]string, error) {
	staged, err := a.Staged()
	if err != nil {
		return nil, err
	}
	removed, err := a.Removed()
	if err != nil {
		return nil, err
	}
	return append(staged, removed...), nil
}

// Clear empties both sets.
func (a *Area) Clear() error {
	staged, err := a.Staged()
	if err != nil {
		return err
	}
	for _, p := range staged {
		if err := a.Unstage(p); err != nil {
			return err
		}
	}
	removed, err := a.Removed()
	if err != nil {
		return err
	}
	for _, p := range removed {
		if err := a.Unremove(p); err != nil {
			return err
		}
	}
	return nil
}
