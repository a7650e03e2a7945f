package repo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/keshon/lvc/internal/logging"
	"github.com/keshon/lvc/internal/repo/meta"
)

// Log returns the current branch history, newest first.
func (r *Repository) Log() (commits []*meta.Commit, err error) {
	done := logging.Op(r.log, "log", "branch", r.State.Current)
	defer func() { done(err) }()

	for c, err := range r.Graph.Ancestors(r.State.Head()) {
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, nil
}

// GlobalLog returns every stored commit, newest first.
func (r *Repository) GlobalLog() (commits []*meta.Commit, err error) {
	done := logging.Op(r.log, "global-log")
	defer func() { done(err) }()

	commits, err = r.Graph.All()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].Timestamp.After(commits[j].Timestamp)
	})
	return commits, nil
}

// Find returns the IDs of commits whose message contains substr.
func (r *Repository) Find(substr string) (ids []string, err error) {
	done := logging.Op(r.log, "find", "query", substr)
	defer func() { done(err) }()

	commits, err := r.Graph.All()
	if err != nil {
		return nil, err
	}
	for _, c := range commits {
		if strings.Contains(c.Message, substr) {
			ids = append(ids, c.ID)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatchingCommit, substr)
	}
	return ids, nil
}
