package repo

import (
	"fmt"

	"github.com/keshon/lvc/internal/logging"
	"github.com/keshon/lvc/internal/repo/meta"
	"github.com/keshon/lvc/internal/repo/worktree"
)

// CheckoutBranch makes name the current branch and syncs the working tree to its head.
func (r *Repository) CheckoutBranch(name string) (err error) {
	done := logging.Op(r.log, "checkout", "branch", name)
	defer func() { done(err) }()

	id, ok := r.State.Branch(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchBranch, name)
	}
	if name == r.State.Current {
		return ErrNoOpCheckout
	}
	target, err := r.Graph.Get(id)
	if err != nil {
		return err
	}
	if err := r.switchTo(target); err != nil {
		return err
	}
	r.State.Current = name
	return r.saveState()
}

// CheckoutPath restores one file from commitID, or from head when commitID
// is empty. Abbreviated IDs are accepted. The staging area is untouched.
func (r *Repository) CheckoutPath(commitID, path string) (err error) {
	done := logging.Op(r.log, "checkout", "commit", commitID, "path", path)
	defer func() { done(err) }()

	if err := worktree.CheckPath(path); err != nil {
		return err
	}
	var c *meta.Commit
	if commitID == "" {
		c, err = r.Head()
	} else {
		c, err = r.ResolveCommit(commitID)
	}
	if err != nil {
		return err
	}
	blob, ok := c.Blob(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPathNotInCommit, path)
	}
	data, err := r.Objects.Get(blob)
	if err != nil {
		return err
	}
	return r.Tree.Write(path, data)
}

// Reset moves the current branch to commitID and syncs the working tree.
func (r *Repository) Reset(commitID string) (err error) {
	done := logging.Op(r.log, "reset", "commit", commitID)
	defer func() { done(err) }()

	target, err := r.ResolveCommit(commitID)
	if err != nil {
		return err
	}
	if err := r.switchTo(target); err != nil {
		return err
	}
	r.State.SetBranch(r.State.Current, target.ID)
	return r.saveState()
}

// checkObstruction fails if target would overwrite a working file that is
// neither tracked by head nor staged.
func (r *Repository) checkObstruction(head, target *meta.Commit) error {
	for _, p := range target.Paths() {
		if head.Tracks(p) || r.Stage.IsStaged(p) {
			continue
		}
		if r.Tree.Exists(p) {
			return fmt.Errorf("%w: %s", ErrUntrackedObstruction, p)
		}
	}
	return nil
}

// switchTo replaces the tracked working files of head with those of target
// and clears the staging area. State is not saved.
func (r *Repository) switchTo(target *meta.Commit) error {
	head, err := r.Head()
	if err != nil {
		return err
	}
	if err := r.checkObstruction(head, target); err != nil {
		return err
	}
	if err := r.syncTree(head, target); err != nil {
		return err
	}
	return r.Stage.Clear()
}

// syncTree writes every file of target and deletes files only head tracks.
func (r *Repository) syncTree(head, target *meta.Commit) error {
	for _, p := range target.Paths() {
		blob, _ := target.Blob(p)
		data, err := r.Objects.Get(blob)
		if err != nil {
			return fmt.Errorf("failed to restore %q: %w", p, err)
		}
		if err := r.Tree.Write(p, data); err != nil {
			return err
		}
	}
	for _, p := range head.Paths() {
		if target.Tracks(p) {
			continue
		}
		if err := r.Tree.Delete(p); err != nil {
			return err
		}
	}
	return nil
}
