package repo

import (
	"fmt"

	"github.com/keshon/lvc/internal/logging"
	"github.com/keshon/lvc/internal/repo/worktree"
)

// Add stages the working copy of path. A file identical to the head
// version is unstaged instead, and any pending removal is cancelled.
func (r *Repository) Add(path string) (err error) {
	done := logging.Op(r.log, "add", "path", path)
	defer func() { done(err) }()

	if err := worktree.CheckPath(path); err != nil {
		return err
	}
	if !r.Tree.Exists(path) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err := r.Stage.Unremove(path); err != nil {
		return err
	}

	head, err := r.Head()
	if err != nil {
		return err
	}
	digest, err := r.Tree.Digest(path)
	if err != nil {
		return err
	}
	if blob, ok := head.Blob(path); ok && blob == digest {
		return r.Stage.Unstage(path)
	}

	data, err := r.Tree.Read(path)
	if err != nil {
		return err
	}
	return r.Stage.Add(path, data)
}

// Remove unstages path and, if head tracks it, marks it for removal and
// deletes the working copy.
func (r *Repository) Remove(path string) (err error) {
	done := logging.Op(r.log, "rm", "path", path)
	defer func() { done(err) }()

	if err := worktree.CheckPath(path); err != nil {
		return err
	}
	head, err := r.Head()
	if err != nil {
		return err
	}
	staged := r.Stage.IsStaged(path)
	tracked := head.Tracks(path)
	if !staged && !tracked {
		return fmt.Errorf("%w: %s", ErrNothingToRemove, path)
	}

	if staged {
		if err := r.Stage.Unstage(path); err != nil {
			return err
		}
	}
	if tracked {
		if err := r.Stage.MarkRemoved(path); err != nil {
			return err
		}
		if err := r.Tree.Delete(path); err != nil {
			return err
		}
	}
	return nil
}
