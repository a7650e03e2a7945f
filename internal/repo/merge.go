package repo

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/keshon/lvc/internal/logging"
	"github.com/keshon/lvc/internal/repo/meta"
	"github.com/keshon/lvc/internal/util"
)

// MergeKind tells how a merge finished.
type MergeKind int

const (
	Merged MergeKind = iota
	FastForwarded
)

// MergeResult is the outcome of a successful merge.
type MergeResult struct {
	Kind   MergeKind
	Commit string // new merge commit, or the fast-forward target
}

type action int

const (
	keep action = iota
	takeOther
	remove
	conflict
)

type side struct {
	blob    string
	present bool
}

func sideOf(c *meta.Commit, path string) side {
	blob, ok := c.Blob(path)
	return side{blob: blob, present: ok}
}

// decide is the three-way decision for one path.
func decide(split, cur, other side) action {
	switch {
	case split.present && cur.present && other.present:
		switch {
		case cur.blob == other.blob:
			return keep
		case split.blob == cur.blob:
			return takeOther
		case split.blob == other.blob:
			return keep
		default:
			return conflict
		}
	case !split.present && !cur.present && other.present:
		return takeOther
	case split.present && cur.present && !other.present:
		if split.blob == cur.blob {
			return remove
		}
		return conflict
	case split.present && !cur.present && other.present:
		if split.blob != other.blob {
			return conflict
		}
	case !split.present && cur.present && other.present:
		if cur.blob != other.blob {
			return conflict
		}
	}
	return keep
}

// Merge reconciles branch into the current branch.
// On conflict the markers are written, clean resolutions stay staged, no
// commit is made and a *ConflictError is returned.
func (r *Repository) Merge(branch string) (res *MergeResult, err error) {
	done := logging.Op(r.log, "merge", "branch", branch, "into", r.State.Current)
	defer func() { done(err) }()

	otherID, ok := r.State.Branch(branch)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchBranch, branch)
	}
	empty, err := r.Stage.Empty()
	if err != nil {
		return nil, err
	}
	if !empty {
		return nil, ErrUncommittedChanges
	}
	if branch == r.State.Current {
		return nil, ErrSelfMerge
	}

	head, err := r.Head()
	if err != nil {
		return nil, err
	}
	other, err := r.Graph.Get(otherID)
	if err != nil {
		return nil, err
	}
	if err := r.checkObstruction(head, other); err != nil {
		return nil, err
	}

	split, err := r.Graph.FindSplit(head.ID, other.ID)
	if err != nil {
		return nil, err
	}
	if split.FastForward {
		if err := r.switchTo(other); err != nil {
			return nil, err
		}
		r.State.SetBranch(r.State.Current, other.ID)
		if err := r.saveState(); err != nil {
			return nil, err
		}
		return &MergeResult{Kind: FastForwarded, Commit: other.ID}, nil
	}

	base, err := r.Graph.Get(split.ID)
	if err != nil {
		return nil, err
	}
	conflicts, err := r.reconcile(base, head, other)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Paths: conflicts}
	}

	changes, err := r.Stage.Changes()
	if err != nil {
		return nil, err
	}
	changes.AllowEmpty = true
	c, err := r.commit(fmt.Sprintf("Merged %s with %s.", branch, r.State.Current), changes)
	if err != nil {
		return nil, err
	}
	return &MergeResult{Kind: Merged, Commit: c.ID}, nil
}

// reconcile applies the decision table to every path of the three commits
// and returns the conflicting paths, sorted.
func (r *Repository) reconcile(base, head, other *meta.Commit) ([]string, error) {
	paths := map[string]struct{}{}
	for _, c := range []*meta.Commit{base, head, other} {
		for p := range c.Files {
			paths[p] = struct{}{}
		}
	}

	var conflicts []string
	for _, p := range util.SortedKeys(paths) {
		cur, oth := sideOf(head, p), sideOf(other, p)
		switch decide(sideOf(base, p), cur, oth) {
		case takeOther:
			data, err := r.Objects.Get(oth.blob)
			if err != nil {
				return nil, err
			}
			if err := r.Tree.Write(p, data); err != nil {
				return nil, err
			}
			if err := r.Stage.Add(p, data); err != nil {
				return nil, err
			}
		case remove:
			if err := r.Stage.MarkRemoved(p); err != nil {
				return nil, err
			}
			if err := r.Tree.Delete(p); err != nil {
				return nil, err
			}
		case conflict:
			artifact, err := r.conflictArtifact(cur, oth)
			if err != nil {
				return nil, err
			}
			if err := r.Tree.Write(p, artifact); err != nil {
				return nil, err
			}
			conflicts = append(conflicts, p)
		}
	}
	return conflicts, nil
}

func (r *Repository) conflictArtifact(cur, other side) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("<<<<<<< HEAD\n")
	if err := r.appendBlob(&buf, cur); err != nil {
		return nil, err
	}
	buf.WriteString("=======\n")
	if err := r.appendBlob(&buf, other); err != nil {
		return nil, err
	}
	buf.WriteString(">>>>>>>\n")
	return buf.Bytes(), nil
}

func (r *Repository) appendBlob(buf *bytes.Buffer, s side) error {
	if !s.present {
		return nil
	}
	data, err := r.Objects.Get(s.blob)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

// IsConflict extracts the conflict details from err.
func IsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
