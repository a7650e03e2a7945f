package repo

import (
	"fmt"

	"github.com/keshon/lvc/internal/logging"
	"github.com/keshon/lvc/internal/repo/meta"
)

// Commit records the staging area as a new commit on the current branch.
func (r *Repository) Commit(message string) (c *meta.Commit, err error) {
	done := logging.Op(r.log, "commit", "branch", r.State.Current)
	defer func() { done(err) }()

	changes, err := r.Stage.Changes()
	if err != nil {
		return nil, err
	}
	return r.commit(message, changes)
}

// commit stores a commit on top of head, advances the current branch and
// clears the staging area.
func (r *Repository) commit(message string, changes meta.Changes) (*meta.Commit, error) {
	head, err := r.Head()
	if err != nil {
		return nil, err
	}
	c, err := r.Graph.Create(message, head, r.now(), changes)
	if err != nil {
		return nil, err
	}
	if err := r.Graph.Put(c); err != nil {
		return nil, err
	}

	r.State.SetBranch(r.State.Current, c.ID)
	if err := r.Stage.Clear(); err != nil {
		return nil, fmt.Errorf("failed to clear staging area: %w", err)
	}
	if err := r.saveState(); err != nil {
		return nil, err
	}
	r.log.Debug("commit created", "id", c.ID, "files", len(c.Files))
	return c, nil
}
