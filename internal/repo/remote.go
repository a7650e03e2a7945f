package repo

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/keshon/lvc/internal/config"
	"github.com/keshon/lvc/internal/logging"
	"github.com/keshon/lvc/internal/repo/meta"
)

// Transfer counts what a push or fetch copied.
type Transfer struct {
	Commits int
	Objects int
	Head    string
}

// AddRemote records another repository root under name. A path naming the
// repository directory itself is accepted.
func (r *Repository) AddRemote(name, path string) (err error) {
	done := logging.Op(r.log, "add-remote", "name", name, "path", path)
	defer func() { done(err) }()

	if err := r.State.AddRemote(name, config.NormalizeRemotePath(path)); err != nil {
		return err
	}
	return r.saveState()
}

// RemoveRemote forgets a remote.
func (r *Repository) RemoveRemote(name string) (err error) {
	done := logging.Op(r.log, "rm-remote", "name", name)
	defer func() { done(err) }()

	if err := r.State.RemoveRemote(name); err != nil {
		return err
	}
	return r.saveState()
}

// OpenRemote opens the named remote as its own Repository sharing this
// repository's filesystem, logger and clock.
func (r *Repository) OpenRemote(name string) (*Repository, error) {
	path, ok := r.State.Remote(name)
	if !ok {
		return nil, fmt.Errorf("%w: no remote named %s", ErrRemoteNotFound, name)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.Config.WorkingTreeDir, path)
	}
	remote, err := Open(path, WithFS(r.FS), WithLogger(r.log), WithClock(r.now))
	if err != nil {
		if errors.Is(err, ErrNotARepository) {
			return nil, fmt.Errorf("%w: %s", ErrRemoteNotFound, path)
		}
		return nil, fmt.Errorf("failed to open remote %s: %w", name, err)
	}
	if remote.Settings.ID == r.Settings.ID {
		return nil, fmt.Errorf("%w: %s", ErrSelfRemote, path)
	}
	if remote.Settings.Hash != r.Settings.Hash {
		return nil, fmt.Errorf("%w: local %s, remote %s", ErrDigestMismatch, r.Settings.Hash, remote.Settings.Hash)
	}
	return remote, nil
}

// copyCommit copies c and every blob it references from src into dst.
// Blobs go first so a stored commit never references a missing object.
func copyCommit(src, dst *Repository, c *meta.Commit, t *Transfer) error {
	for _, p := range c.Paths() {
		blob, _ := c.Blob(p)
		if dst.Objects.Has(blob) {
			continue
		}
		data, err := src.Objects.Get(blob)
		if err != nil {
			return fmt.Errorf("failed to read object %s: %w", blob, err)
		}
		if _, err := dst.Objects.Put(data); err != nil {
			return err
		}
		t.Objects++
	}
	if dst.Graph.Has(c.ID) {
		return nil
	}
	if err := dst.Graph.Put(c); err != nil {
		return err
	}
	t.Commits++
	return nil
}

// Push appends the current branch's commits to branch on the remote.
// The remote branch must be unset or an ancestor of the local head.
func (r *Repository) Push(remoteName, branch string) (t *Transfer, err error) {
	done := logging.Op(r.log, "push", "remote", remoteName, "branch", branch)
	defer func() { done(err) }()

	remote, err := r.OpenRemote(remoteName)
	if err != nil {
		return nil, err
	}

	head := r.State.Head()
	chain, err := r.Graph.Chain(head)
	if err != nil {
		return nil, err
	}
	remoteHead, ok := remote.State.Branch(branch)
	if !ok {
		remote.State.SetBranch(branch, "")
	}
	ahead := chain
	if remoteHead != "" {
		i := slices.Index(chain, remoteHead)
		if i < 0 {
			return nil, ErrRejectNonFastForward
		}
		ahead = chain[:i]
	}

	t = &Transfer{Head: head}
	// oldest first so every stored commit has its parent
	for i := len(ahead) - 1; i >= 0; i-- {
		c, err := r.Graph.Get(ahead[i])
		if err != nil {
			return nil, err
		}
		if err := copyCommit(r, remote, c, t); err != nil {
			return nil, fmt.Errorf("failed to push %s: %w", c.ID, err)
		}
	}

	remote.State.SetBranch(branch, head)
	if err := remote.saveState(); err != nil {
		return nil, err
	}
	return t, nil
}

// Fetch copies the history of branch from the remote and records it as the
// tracking ref <remote>/<branch>. Named local branches and the working tree
// are untouched.
func (r *Repository) Fetch(remoteName, branch string) (t *Transfer, err error) {
	done := logging.Op(r.log, "fetch", "remote", remoteName, "branch", branch)
	defer func() { done(err) }()

	remote, err := r.OpenRemote(remoteName)
	if err != nil {
		return nil, err
	}
	head, ok := remote.State.Branch(branch)
	if !ok || head == "" {
		return nil, fmt.Errorf("%w: %s/%s", ErrRemoteBranchNotFound, remoteName, branch)
	}

	var commits []*meta.Commit
	for c, err := range remote.Graph.Ancestors(head) {
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}

	t = &Transfer{Head: head}
	for i := len(commits) - 1; i >= 0; i-- {
		if err := copyCommit(remote, r, commits[i], t); err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", commits[i].ID, err)
		}
	}

	r.State.SetBranch(meta.TrackingRef(remoteName, branch), head)
	if err := r.saveState(); err != nil {
		return nil, err
	}
	return t, nil
}

// Pull fetches branch from the remote and merges its tracking ref.
func (r *Repository) Pull(remoteName, branch string) (*MergeResult, error) {
	if _, err := r.Fetch(remoteName, branch); err != nil {
		return nil, err
	}
	return r.Merge(meta.TrackingRef(remoteName, branch))
}
