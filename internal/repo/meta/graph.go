package meta

import (
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/repo/codec"
	"github.com/keshon/lvc/internal/repo/object"
	"github.com/keshon/lvc/internal/util"
)

const (
	commitKind    = "commit"
	commitVersion = 1
	cacheSize     = 512
)

var (
	ErrAlreadyAncestor  = errors.New("Given branch is an ancestor of the current branch.")
	ErrNoCommonAncestor = errors.New("Branches share no common ancestor.")
)

// Changes is the staged input of a new commit.
type Changes struct {
	Adds       map[string][]byte
	Removes    []string
	AllowEmpty bool
}

// Empty reports whether nothing is staged.
func (c Changes) Empty() bool {
	return len(c.Adds) == 0 && len(c.Removes) == 0
}

// Graph stores commit records under commits/<id>. Commits returned by Get
// are shared with the cache and must be treated as read-only.
type Graph struct {
	fs      fs.FS
	dir     string
	objects *object.Store
	cache   *lru.Cache[string, *Commit]
}

// NewGraph opens the commit graph stored in dir.
func NewGraph(fsys fs.FS, dir string, objects *object.Store) *Graph {
	cache, err := lru.New[string, *Commit](cacheSize)
	if err != nil {
		panic(err) // only fails for a non-positive size
	}
	return &Graph{fs: fsys, dir: dir, objects: objects, cache: cache}
}

// Objects returns the blob store commits reference.
func (g *Graph) Objects() *object.Store { return g.objects }

func (g *Graph) path(id string) string { return filepath.Join(g.dir, id) }

// Create builds a commit on top of parent (nil for a root commit), storing
// every staged add as a blob. The commit is not persisted; call Put.
func (g *Graph) Create(message string, parent *Commit, at time.Time, changes Changes) (*Commit, error) {
	if message == "" {
		return nil, ErrEmptyCommit
	}
	if parent != nil && changes.Empty() && !changes.AllowEmpty {
		return nil, ErrNothingToCommit
	}

	files := map[string]string{}
	parentID := ""
	if parent != nil {
		parentID = parent.ID
		for p, id := range parent.Files {
			files[p] = id
		}
	}
	for _, p := range changes.Removes {
		delete(files, p)
	}
	for _, p := range util.SortedKeys(changes.Adds) {
		id, err := g.objects.Put(changes.Adds[p])
		if err != nil {
			return nil, fmt.Errorf("failed to store %q: %w", p, err)
		}
		files[p] = id
	}

	ts := at.UTC().Truncate(time.Second)
	id, err := CommitID(g.objects.Code(), message, ts, parentID)
	if err != nil {
		return nil, err
	}
	return &Commit{ID: id, Message: message, Timestamp: ts, Parent: parentID, Files: files}, nil
}

// Put persists c under its ID, replacing any record with the same ID.
func (g *Graph) Put(c *Commit) error {
	if c.Files == nil {
		c.Files = map[string]string{}
	}
	data, err := codec.Encode(commitKind, commitVersion, c)
	if err != nil {
		return err
	}
	if err := util.WriteFileAtomic(g.fs, g.path(c.ID), data); err != nil {
		return fmt.Errorf("failed to write commit %s: %w", c.ID, err)
	}
	g.cache.Add(c.ID, c)
	return nil
}

// Get reads a commit by full ID.
func (g *Graph) Get(id string) (*Commit, error) {
	if c, ok := g.cache.Get(id); ok {
		return c, nil
	}
	c, err := g.read(id)
	if err != nil {
		return nil, err
	}
	g.cache.Add(id, c)
	return c, nil
}

func (g *Graph) read(id string) (*Commit, error) {
	if !g.objects.ValidID(id) {
		return nil, fmt.Errorf("%w: %q", ErrCommitNotFound, id)
	}
	data, err := g.fs.ReadFile(g.path(id))
	if err != nil {
		if g.fs.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCommitNotFound, id)
		}
		return nil, fmt.Errorf("failed to read commit %s: %w", id, err)
	}
	var c Commit
	if _, err := codec.Decode(data, commitKind, commitVersion, &c); err != nil {
		return nil, fmt.Errorf("commit %s: %w", id, err)
	}
	if c.Files == nil {
		c.Files = map[string]string{}
	}
	c.ID = id
	return &c, nil
}

// Has reports whether a commit with the full ID is stored.
func (g *Graph) Has(id string) bool {
	return g.objects.ValidID(id) && g.fs.Exists(g.path(id))
}

// IDs returns every stored commit ID, sorted.
func (g *Graph) IDs() ([]string, error) {
	entries, err := g.fs.ReadDir(g.dir)
	if err != nil {
		if g.fs.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list commits: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if !e.IsDir() && g.objects.ValidID(e.Name()) {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// All returns every stored commit in ID order.
func (g *Graph) All() ([]*Commit, error) {
	ids, err := g.IDs()
	if err != nil {
		return nil, err
	}
	commits := make([]*Commit, 0, len(ids))
	for _, id := range ids {
		c, err := g.Get(id)
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, nil
}

// Resolve expands an abbreviated ID to the first stored ID it prefixes.
// Input that matches nothing is returned unchanged.
func (g *Graph) Resolve(prefix string) (string, error) {
	if prefix == "" {
		return prefix, nil
	}
	ids, err := g.IDs()
	if err != nil {
		return "", err
	}
	for _, id := range ids {
		if strings.HasPrefix(id, prefix) {
			return id, nil
		}
	}
	return prefix, nil
}

// Ancestors walks from id to the root, yielding id's commit first.
// A read failure is yielded once and ends the walk.
func (g *Graph) Ancestors(id string) iter.Seq2[*Commit, error] {
	return func(yield func(*Commit, error) bool) {
		for cur := id; cur != ""; {
			c, err := g.Get(cur)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(c, nil) {
				return
			}
			cur = c.Parent
		}
	}
}

// Chain returns the IDs from id back to the root.
func (g *Graph) Chain(id string) ([]string, error) {
	var ids []string
	for c, err := range g.Ancestors(id) {
		if err != nil {
			return nil, err
		}
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// Length returns the number of commits from id to the root inclusive.
func (g *Graph) Length(id string) (int, error) {
	ids, err := g.Chain(id)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Split is the outcome of split-point discovery.
type Split struct {
	ID          string
	FastForward bool // current is an ancestor of other
}

// FindSplit finds the latest common ancestor of current and other.
// The longer chain is aligned to the shorter one before walking both in
// lockstep, which is exact only for single-parent histories.
func (g *Graph) FindSplit(current, other string) (Split, error) {
	cur, err := g.Chain(current)
	if err != nil {
		return Split{}, err
	}
	oth, err := g.Chain(other)
	if err != nil {
		return Split{}, err
	}

	if len(cur) == 0 || len(oth) == 0 {
		return Split{}, fmt.Errorf("%w: empty history", ErrCommitNotFound)
	}

	ci, oi := 0, 0
	if len(cur) > len(oth) {
		ci = len(cur) - len(oth)
	} else {
		oi = len(oth) - len(cur)
	}

	if cur[ci] == oth[oi] {
		if len(cur) < len(oth) {
			return Split{ID: cur[ci], FastForward: true}, nil
		}
		return Split{}, ErrAlreadyAncestor
	}
	for ; ci < len(cur); ci, oi = ci+1, oi+1 {
		if cur[ci] == oth[oi] {
			return Split{ID: cur[ci]}, nil
		}
	}
	return Split{}, ErrNoCommonAncestor
}

// Verify re-reads every commit record bypassing the cache and checks its
// envelope checksum and that its fields hash to its ID.
func (g *Graph) Verify() ([]object.Check, error) {
	ids, err := g.IDs()
	if err != nil {
		return nil, err
	}
	checks := make([]object.Check, 0, len(ids))
	for _, id := range ids {
		c, err := g.read(id)
		if err != nil {
			checks = append(checks, object.Check{ID: id, Status: object.Damaged, Err: err})
			continue
		}
		actual, err := CommitID(g.objects.Code(), c.Message, c.Timestamp, c.Parent)
		if err == nil && actual != id {
			err = fmt.Errorf("record hashes to %s", actual)
		}
		if err != nil {
			checks = append(checks, object.Check{ID: id, Status: object.Damaged, Err: err})
			continue
		}
		checks = append(checks, object.Check{ID: id, Status: object.OK})
	}
	return checks, nil
}

// ReferencedBlobs maps every blob ID referenced by a readable commit to the
// paths it is tracked under.
func (g *Graph) ReferencedBlobs() (map[string][]string, error) {
	ids, err := g.IDs()
	if err != nil {
		return nil, err
	}
	refs := map[string]map[string]struct{}{}
	for _, id := range ids {
		c, err := g.Get(id)
		if err != nil {
			continue // reported by Verify
		}
		for p, id := range c.Files {
			if refs[id] == nil {
				refs[id] = map[string]struct{}{}
			}
			refs[id][p] = struct{}{}
		}
	}
	out := make(map[string][]string, len(refs))
	for id, paths := range refs {
		out[id] = util.SortedKeys(paths)
	}
	return out, nil
}
