package repo

import (
	"errors"

	"github.com/keshon/lvc/internal/repo/meta"
	"github.com/keshon/lvc/internal/repo/worktree"
)

var (
	ErrNotARepository     = errors.New("Not in an initialized lvc directory.")
	ErrAlreadyInitialized = errors.New("A lvc version-control system already exists in the current directory.")

	ErrFileNotFound         = errors.New("File does not exist.")
	ErrNothingToRemove      = errors.New("No reason to remove the file.")
	ErrNoOpCheckout         = errors.New("No need to checkout the current branch.")
	ErrUntrackedObstruction = errors.New("There is an untracked file in the way; delete it, or add and commit it first.")
	ErrPathNotInCommit      = errors.New("File does not exist in that commit.")
	ErrNoMatchingCommit     = errors.New("Found no commit with that message.")

	ErrUncommittedChanges = errors.New("You have uncommitted changes.")
	ErrSelfMerge          = errors.New("Cannot merge a branch with itself.")
	ErrMergeConflict      = errors.New("Encountered a merge conflict.")

	ErrRemoteNotFound       = errors.New("Remote directory not found.")
	ErrRemoteBranchNotFound = errors.New("That remote does not have that branch.")
	ErrRejectNonFastForward = errors.New("Please pull down remote changes before pushing.")
	ErrDigestMismatch       = errors.New("Remote repository uses a different hash function.")
	ErrSelfRemote           = errors.New("Remote is this repository.")
)

// Errors owned by the commit graph, state and working tree, re-exported for callers of this package.
var (
	ErrEmptyCommit         = meta.ErrEmptyCommit
	ErrNothingToCommit     = meta.ErrNothingToCommit
	ErrCommitNotFound      = meta.ErrCommitNotFound
	ErrBranchExists        = meta.ErrBranchExists
	ErrNoSuchBranch        = meta.ErrNoSuchBranch
	ErrCannotDeleteCurrent = meta.ErrCannotDeleteCurrent
	ErrRemoteExists        = meta.ErrRemoteExists
	ErrNoSuchRemote        = meta.ErrNoSuchRemote
	ErrAlreadyAncestor     = meta.ErrAlreadyAncestor
	ErrNoCommonAncestor    = meta.ErrNoCommonAncestor
	ErrReservedPath        = worktree.ErrReservedPath
)

// ConflictError reports a merge that left conflict markers in the working tree.
type ConflictError struct {
	Paths []string // sorted
}

func (e *ConflictError) Error() string { return ErrMergeConflict.Error() }

// Is makes errors.Is(err, ErrMergeConflict) hold.
func (e *ConflictError) Is(target error) bool { return target == ErrMergeConflict }
