package meta

import (
	"errors"
	"strconv"
	"time"

	"github.com/keshon/lvc/internal/repo/object"
	"github.com/keshon/lvc/internal/util"
)

// InitialMessage is the message of the root commit created by init.
const InitialMessage = "initial commit"

var (
	ErrEmptyCommit     = errors.New("Please enter a commit message.")
	ErrNothingToCommit = errors.New("No changes added to the commit.")
	ErrCommitNotFound  = errors.New("No commit with that id exists.")
)

// Commit is an immutable snapshot: tracked path -> blob ID.
type Commit struct {
	ID        string            `json:"-"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Parent    string            `json:"parent,omitempty"`
	Files     map[string]string `json:"files"`
}

// Paths returns the tracked paths, sorted.
func (c *Commit) Paths() []string {
	return util.SortedKeys(c.Files)
}

// Blob returns the blob tracked at path.
func (c *Commit) Blob(path string) (string, bool) {
	id, ok := c.Files[path]
	return id, ok
}

// Tracks reports whether path is tracked.
func (c *Commit) Tracks(path string) bool {
	_, ok := c.Files[path]
	return ok
}

// rootParent stands in for the parent of a root commit in the identity input.
const rootParent = "-"

// CommitID computes the identity of a commit from message, timestamp and parent.
// Tracked blobs do not take part.
func CommitID(code uint64, message string, ts time.Time, parent string) (string, error) {
	if parent == "" {
		parent = rootParent
	}
	input := message + "\x00" + strconv.FormatInt(ts.Unix(), 10) + "\x00" + parent
	return object.Digest(code, object.KindCommit, []byte(input))
}
