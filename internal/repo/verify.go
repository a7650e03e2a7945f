package repo

import (
	"fmt"
	"sort"

	"github.com/keshon/lvc/internal/logging"
	"github.com/keshon/lvc/internal/repo/object"
	"github.com/keshon/lvc/internal/util"
)

// MissingBlob is a blob referenced by some commit but absent from the store.
type MissingBlob struct {
	ID    string
	Paths []string
}

// VerifyReport is the result of a full integrity check.
type VerifyReport struct {
	Objects []object.Check // every stored blob
	Commits []object.Check // every stored commit record and branch target
	Missing []MissingBlob
}

// OK reports whether nothing is damaged or missing.
func (v *VerifyReport) OK() bool {
	for _, list := range [][]object.Check{v.Objects, v.Commits} {
		for _, c := range list {
			if c.Status != object.OK {
				return false
			}
		}
	}
	return len(v.Missing) == 0
}

// Verify re-hashes every stored object and commit record and reports blobs
// or branch targets that are referenced but not stored.
func (r *Repository) Verify() (report *VerifyReport, err error) {
	done := logging.Op(r.log, "verify")
	defer func() { done(err) }()

	ids, err := r.Objects.List()
	if err != nil {
		return nil, err
	}
	report = &VerifyReport{}
	for check := range r.Objects.Verify(ids, util.WorkerCount()) {
		report.Objects = append(report.Objects, check)
	}
	sort.Slice(report.Objects, func(i, j int) bool { return report.Objects[i].ID < report.Objects[j].ID })

	if report.Commits, err = r.Graph.Verify(); err != nil {
		return nil, err
	}
	for _, name := range r.State.BranchNames() {
		id, _ := r.State.Branch(name)
		if id == "" || r.Graph.Has(id) {
			continue
		}
		report.Commits = append(report.Commits, object.Check{
			ID:     id,
			Status: object.Missing,
			Err:    fmt.Errorf("target of branch %s", name),
		})
	}

	refs, err := r.Graph.ReferencedBlobs()
	if err != nil {
		return nil, err
	}
	for _, id := range util.SortedKeys(refs) {
		if !r.Objects.Has(id) {
			report.Missing = append(report.Missing, MissingBlob{ID: id, Paths: refs[id]})
		}
	}
	return report, nil
}
