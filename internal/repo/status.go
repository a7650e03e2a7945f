package repo

import (
	"sort"

	"github.com/keshon/lvc/internal/logging"
)

// ChangeKind classifies an unstaged modification.
type ChangeKind string

const (
	Modified ChangeKind = "modified"
	Deleted  ChangeKind = "deleted"
)

// Change is a working tree difference not reflected in the staging area.
type Change struct {
	Path string
	Kind ChangeKind
}

// Status is a snapshot of branches, staging area and working tree. Every
// list is sorted.
type Status struct {
	Current   string
	Branches  []string
	Staged    []string
	Removed   []string
	Unstaged  []Change
	Untracked []string
}

// Status compares head, the staging area and the working tree.
func (r *Repository) Status() (st *Status, err error) {
	done := logging.Op(r.log, "status")
	defer func() { done(err) }()

	head, err := r.Head()
	if err != nil {
		return nil, err
	}
	st = &Status{Current: r.State.Current, Branches: r.State.BranchNames()}
	if st.Staged, err = r.Stage.Staged(); err != nil {
		return nil, err
	}
	if st.Removed, err = r.Stage.Removed(); err != nil {
		return nil, err
	}
	files, err := r.Tree.Files()
	if err != nil {
		return nil, err
	}

	staged := toSet(st.Staged)
	removed := toSet(st.Removed)
	present := toSet(files)

	// staged content that no longer matches the working copy
	for _, p := range st.Staged {
		if _, ok := present[p]; !ok {
			st.Unstaged = append(st.Unstaged, Change{Path: p, Kind: Deleted})
			continue
		}
		want, err := r.Stage.StagedContent(p)
		if err != nil {
			return nil, err
		}
		digest, err := r.Tree.Digest(p)
		if err != nil {
			return nil, err
		}
		stagedID, err := r.Objects.Digest(want)
		if err != nil {
			return nil, err
		}
		if stagedID != digest {
			st.Unstaged = append(st.Unstaged, Change{Path: p, Kind: Modified})
		}
	}

	// tracked files changed or deleted without staging
	for _, p := range head.Paths() {
		if _, ok := staged[p]; ok {
			continue
		}
		if _, ok := removed[p]; ok {
			continue
		}
		if _, ok := present[p]; !ok {
			st.Unstaged = append(st.Unstaged, Change{Path: p, Kind: Deleted})
			continue
		}
		digest, err := r.Tree.Digest(p)
		if err != nil {
			return nil, err
		}
		if blob, _ := head.Blob(p); blob != digest {
			st.Unstaged = append(st.Unstaged, Change{Path: p, Kind: Modified})
		}
	}
	sort.Slice(st.Unstaged, func(i, j int) bool { return st.Unstaged[i].Path < st.Unstaged[j].Path })

	for _, p := range files {
		_, isStaged := staged[p]
		_, isRemoved := removed[p]
		if isRemoved || (!isStaged && !head.Tracks(p)) {
			st.Untracked = append(st.Untracked, p)
		}
	}
	return st, nil
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
