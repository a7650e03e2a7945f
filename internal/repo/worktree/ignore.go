package worktree

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"

	"github.com/keshon/lvc/internal/config"
	"github.com/keshon/lvc/internal/fs"
)

var ErrInvalidPattern = errors.New("invalid ignore pattern")

type matcher struct {
	g        glob.Glob
	dirOnly  bool // pattern ended in "/"
	anchored bool // pattern contains "/" and matches the full path
}

// Ignore decides which working tree paths are invisible to the repository.
// The reserved directory is always ignored.
type Ignore struct {
	matchers []matcher
}

// NewIgnore compiles glob patterns. "**" crosses directories, "*" does not.
// Patterns without a slash match the base name at any depth.
func NewIgnore(patterns []string) (*Ignore, error) {
	ig := &Ignore{}
	for _, raw := range patterns {
		p := strings.TrimSpace(raw)
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		m := matcher{}
		if strings.HasSuffix(p, "/") {
			m.dirOnly = true
			p = strings.TrimSuffix(p, "/")
		}
		if strings.Contains(p, "/") {
			m.anchored = true
			p = strings.TrimPrefix(p, "/")
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, raw, err)
		}
		m.g = g
		ig.matchers = append(ig.matchers, m)
	}
	return ig, nil
}

// LoadIgnore combines the .lvcignore file (if any) with extra patterns from settings.
func LoadIgnore(fsys fs.FS, cfg *config.RepoConfig, extra []string) (*Ignore, error) {
	patterns := append([]string(nil), extra...)
	data, err := fsys.ReadFile(cfg.IgnoreFile())
	if err != nil && !fsys.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", config.IgnoreFile, err)
	}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		patterns = append(patterns, sc.Text())
	}
	return NewIgnore(patterns)
}

// Match reports whether the slash path rel is ignored.
func (ig *Ignore) Match(rel string, isDir bool) bool {
	rel = path.Clean(rel)
	if rel == config.RepoDir || strings.HasPrefix(rel, config.RepoDir+"/") {
		return true
	}
	if ig == nil {
		return false
	}
	base := path.Base(rel)
	for _, m := range ig.matchers {
		if m.dirOnly && !isDir {
			continue
		}
		if m.anchored {
			if m.g.Match(rel) {
				return true
			}
			continue
		}
		if m.g.Match(base) {
			return true
		}
	}
	return false
}
