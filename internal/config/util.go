package config

import (
	"path/filepath"

	"github.com/keshon/lvc/internal/fs"
)

// ResolveWorkingTreeRoot determines the working tree root by walking up from start.
// It traverses up the directory tree until it finds a .lvc directory.
// Returns "" when no repository encloses start.
func ResolveWorkingTreeRoot(fsys fs.FS, start string) string {
	cwd, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	for {
		if fsys.IsDir(filepath.Join(cwd, RepoDir)) {
			return cwd
		}
		parent := filepath.Dir(cwd)
		if parent == cwd {
			return "" // reached filesystem root
		}
		cwd = parent
	}
}

// NormalizeRemotePath accepts either a working tree root or its .lvc directory
// and returns the working tree root.
func NormalizeRemotePath(path string) string {
	clean := filepath.Clean(path)
	if filepath.Base(clean) == RepoDir {
		return filepath.Dir(clean)
	}
	return clean
}
