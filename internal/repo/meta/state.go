package meta

import (
	"errors"
	"fmt"
	"strings"

	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/repo/codec"
	"github.com/keshon/lvc/internal/util"
)

const (
	stateKind    = "state"
	stateVersion = 1
)

var (
	ErrBranchExists        = errors.New("A branch with that name already exists.")
	ErrNoSuchBranch        = errors.New("A branch with that name does not exist.")
	ErrCannotDeleteCurrent = errors.New("Cannot remove the current branch.")
	ErrInvalidBranchName   = errors.New("Invalid branch name.")
	ErrRemoteExists        = errors.New("A remote with that name already exists.")
	ErrNoSuchRemote        = errors.New("A remote with that name does not exist.")
)

// State is the mutable part of a repository: which branch is checked out,
// where every branch points, and the known remotes.
type State struct {
	Current  string            `json:"current"`
	Branches map[string]string `json:"branches"`
	Remotes  map[string]string `json:"remotes"`
}

// NewState returns the state of a fresh repository whose only branch points at head.
func NewState(branch, head string) *State {
	return &State{
		Current:  branch,
		Branches: map[string]string{branch: head},
		Remotes:  map[string]string{},
	}
}

// LoadState reads state.json.
func LoadState(fsys fs.FS, path string) (*State, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}
	var s State
	if _, err := codec.Decode(data, stateKind, stateVersion, &s); err != nil {
		return nil, fmt.Errorf("state: %w", err)
	}
	if s.Branches == nil {
		s.Branches = map[string]string{}
	}
	if s.Remotes == nil {
		s.Remotes = map[string]string{}
	}
	return &s, nil
}

// Save writes state.json atomically.
func (s *State) Save(fsys fs.FS, path string) error {
	data, err := codec.Encode(stateKind, stateVersion, s)
	if err != nil {
		return err
	}
	if err := util.WriteFileAtomic(fsys, path, data); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

// Head returns the commit the current branch points at.
func (s *State) Head() string {
	return s.Branches[s.Current]
}

// Branch returns where name points.
func (s *State) Branch(name string) (string, bool) {
	id, ok := s.Branches[name]
	return id, ok
}

// SetBranch points name at id, creating it if needed.
func (s *State) SetBranch(name, id string) {
	s.Branches[name] = id
}

// BranchNames returns every branch, tracking refs included, sorted.
func (s *State) BranchNames() []string {
	return util.SortedKeys(s.Branches)
}

// CreateBranch adds a branch pointing at the current head.
func (s *State) CreateBranch(name string) error {
	if name == "" || strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("%w: %q", ErrInvalidBranchName, name)
	}
	if _, ok := s.Branches[name]; ok {
		return fmt.Errorf("%w: %s", ErrBranchExists, name)
	}
	s.Branches[name] = s.Head()
	return nil
}

// DeleteBranch removes the pointer only; commits stay.
func (s *State) DeleteBranch(name string) error {
	if _, ok := s.Branches[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchBranch, name)
	}
	if name == s.Current {
		return fmt.Errorf("%w: %s", ErrCannotDeleteCurrent, name)
	}
	delete(s.Branches, name)
	return nil
}

// AddRemote records a remote repository root.
func (s *State) AddRemote(name, path string) error {
	if _, ok := s.Remotes[name]; ok {
		return fmt.Errorf("%w: %s", ErrRemoteExists, name)
	}
	s.Remotes[name] = path
	return nil
}

// RemoveRemote forgets a remote. Its tracking refs are kept.
func (s *State) RemoveRemote(name string) error {
	if _, ok := s.Remotes[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchRemote, name)
	}
	delete(s.Remotes, name)
	return nil
}

// Remote returns the root path of a remote.
func (s *State) Remote(name string) (string, bool) {
	p, ok := s.Remotes[name]
	return p, ok
}

// TrackingRef names the local ref recording a fetched remote branch.
func TrackingRef(remote, branch string) string {
	return remote + "/" + branch
}
