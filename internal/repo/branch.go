package repo

import (
	"github.com/keshon/lvc/internal/logging"
)

// Branch describes one entry of the branch table.
type Branch struct {
	Name    string
	Head    string
	Current bool
}

// Branches lists every branch, tracking refs included, sorted by name.
func (r *Repository) Branches() []Branch {
	names := r.State.BranchNames()
	out := make([]Branch, 0, len(names))
	for _, name := range names {
		head, _ := r.State.Branch(name)
		out = append(out, Branch{Name: name, Head: head, Current: name == r.State.Current})
	}
	return out
}

// CreateBranch adds a branch at the current head without switching to it.
func (r *Repository) CreateBranch(name string) (err error) {
	done := logging.Op(r.log, "branch", "name", name)
	defer func() { done(err) }()

	if err := r.State.CreateBranch(name); err != nil {
		return err
	}
	return r.saveState()
}

// DeleteBranch removes a branch pointer. Its commits stay stored.
func (r *Repository) DeleteBranch(name string) (err error) {
	done := logging.Op(r.log, "rm-branch", "name", name)
	defer func() { done(err) }()

	if err := r.State.DeleteBranch(name); err != nil {
		return err
	}
	return r.saveState()
}
