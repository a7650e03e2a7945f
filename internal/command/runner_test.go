package command_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/lvc/internal/command"
	_ "github.com/keshon/lvc/internal/command/all"
	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/logging"
	"github.com/keshon/lvc/internal/repo"
)

type result struct {
	out, err string
	code     int
}

// session runs command lines against one in-memory filesystem.
type session struct {
	t   *testing.T
	fs  *fs.MemoryFS
	cwd string
	now time.Time
}

func newSession(t *testing.T) *session {
	return &session{
		t:   t,
		fs:  fs.NewMemoryFS(),
		cwd: "/w",
		now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *session) clock() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *session) run(args ...string) result {
	var out, errOut bytes.Buffer
	code := command.Execute(command.Env{
		Cwd:    s.cwd,
		Stdout: &out,
		Stderr: &errOut,
		FS:     s.fs,
		Clock:  s.clock,
	}, args)
	return result{out: out.String(), err: errOut.String(), code: code}
}

func (s *session) ok(args ...string) string {
	s.t.Helper()
	res := s.run(args...)
	require.Equal(s.t, 0, res.code, "lvc %v: %s", args, res.err)
	return res.out
}

func (s *session) fails(msg string, args ...string) result {
	s.t.Helper()
	res := s.run(args...)
	require.Equal(s.t, 1, res.code, "lvc %v should fail", args)
	assert.Equal(s.t, msg+"\n", res.err)
	return res
}

func (s *session) write(path, content string) {
	s.t.Helper()
	full := s.cwd + "/" + path
	require.NoError(s.t, s.fs.MkdirAll(full[:strings.LastIndex(full, "/")], 0o755))
	require.NoError(s.t, s.fs.WriteFile(full, []byte(content), 0o644))
}

func (s *session) read(path string) (string, bool) {
	data, err := s.fs.ReadFile(s.cwd + "/" + path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// section returns the plain lines listed under a status header.
func section(out, title string) []string {
	var lines []string
	in := false
	for _, l := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(l, "=== "+title+" ==="):
			in = true
		case in && l == "":
			return lines
		case in:
			lines = append(lines, l)
		}
	}
	return lines
}

func TestDispatchErrors(t *testing.T) {
	s := newSession(t)
	s.fails("Please enter a command.")
	s.fails("No command with that name exists.", "frobnicate")
	s.fails("Not in an initialized lvc directory.", "status")

	s.ok("init")
	s.fails("A lvc version-control system already exists in the current directory.", "init")
	s.fails("Incorrect operands.", "add")
	s.fails("Incorrect operands.", "branch", "a", "b")
	s.fails("Incorrect operands.", "status", "--bogus")
	s.fails("Incorrect operands.", "checkout", "a", "b")
	s.fails("File does not exist.", "add", "missing.txt")
	s.fails("Please enter a commit message.", "commit", "")
	s.fails("Please enter a commit message.", "commit")
	s.fails("No changes added to the commit.", "commit", "nothing")
	s.fails("Found no commit with that message.", "find", "nope")
	s.fails("A branch with that name does not exist.", "checkout", "ghost")
	s.fails("No need to checkout the current branch.", "checkout", "main")
	s.fails("No commit with that id exists.", "reset", "abcdef")
	s.fails("Cannot merge a branch with itself.", "merge", "main")
}

func TestInitFlags(t *testing.T) {
	s := newSession(t)
	out := s.ok("init", "--compress", "--hash", "sha2-512")
	assert.Contains(t, out, "Initialized empty lvc repository")

	r, err := repo.Open("/w", repo.WithFS(s.fs))
	require.NoError(t, err)
	assert.True(t, r.Settings.Compress)
	assert.Equal(t, "sha2-512", r.Settings.Hash)

	other := newSession(t)
	other.cwd = "/x"
	res := other.run("init", "--hash", "no-such-hash")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.err, "unknown hash function")
}

func TestCommitLogAndFind(t *testing.T) {
	s := newSession(t)
	s.ok("init")
	s.write("f.txt", "v1")
	s.ok("add", "f.txt")

	out := s.ok("commit", "first change")
	assert.Contains(t, out, "[main ")
	assert.Contains(t, out, "] first change")

	log := s.ok("log")
	assert.Equal(t, 2, strings.Count(log, "commit "))
	assert.Less(t, strings.Index(log, "first change"), strings.Index(log, "initial commit"))
	assert.Contains(t, log, "Date: ")

	ids := strings.Fields(s.ok("find", "first"))
	require.Len(t, ids, 1)
	assert.Contains(t, log, "commit "+ids[0])

	assert.Equal(t, 2, strings.Count(s.ok("global-log"), "commit "))
}

func TestStatusSections(t *testing.T) {
	s := newSession(t)
	s.ok("init")
	s.write("tracked.txt", "a")
	s.write("gone.txt", "b")
	s.ok("add", "tracked.txt")
	s.ok("add", "gone.txt")
	s.ok("commit", "base")

	s.write("tracked.txt", "changed")
	s.write("new.txt", "n")
	s.write("staged.txt", "s")
	s.ok("add", "staged.txt")
	s.ok("rm", "gone.txt")
	s.ok("branch", "dev")

	out := s.ok("status")
	branches := section(out, "Branches")
	require.Len(t, branches, 2)
	assert.Equal(t, "dev", branches[0])
	assert.Contains(t, branches[1], "*main")
	assert.Equal(t, []string{"staged.txt"}, section(out, "Staged Files"))
	assert.Equal(t, []string{"gone.txt"}, section(out, "Removed Files"))
	assert.Equal(t, []string{"tracked.txt (modified)"}, section(out, "Modifications Not Staged For Commit"))
	assert.Equal(t, []string{"new.txt"}, section(out, "Untracked Files"))

	_, exists := s.read("gone.txt")
	assert.False(t, exists)
}

func TestSubdirectoryPaths(t *testing.T) {
	s := newSession(t)
	s.ok("init")
	s.write("sub/g.txt", "g")

	s.cwd = "/w/sub"
	s.ok("add", "g.txt")
	s.cwd = "/w"

	assert.Equal(t, []string{"sub/g.txt"}, section(s.ok("status"), "Staged Files"))

	s.cwd = "/w/sub"
	res := s.run("add", "../../elsewhere.txt")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.err, "outside the repository")
}

func TestRepositoryDirectoryOperands(t *testing.T) {
	s := newSession(t)
	s.ok("init")
	settings, ok := s.read(".lvc/config.yaml")
	require.True(t, ok)

	s.fails("path is inside the repository directory: .lvc/config.yaml", "add", ".lvc/config.yaml")
	s.fails("No changes added to the commit.", "commit", "track repo config")
	s.fails("path is inside the repository directory: .lvc/config.yaml", "rm", ".lvc/config.yaml")
	s.fails("path is inside the repository directory: .lvc/config.yaml", "checkout", "--", ".lvc/config.yaml")

	s.cwd = "/w/.lvc"
	s.fails("path is inside the repository directory: .lvc/state.json", "add", "state.json")
	s.cwd = "/w"

	got, ok := s.read(".lvc/config.yaml")
	require.True(t, ok)
	assert.Equal(t, settings, got)
	out := s.ok("status")
	assert.Empty(t, section(out, "Staged Files"))
	assert.Empty(t, section(out, "Removed Files"))
}

func TestCheckoutForms(t *testing.T) {
	s := newSession(t)
	s.ok("init")
	s.write("f.txt", "one")
	s.ok("add", "f.txt")
	s.ok("commit", "version one")
	s.write("f.txt", "two")
	s.ok("add", "f.txt")
	s.ok("commit", "version two")

	s.write("f.txt", "scratch")
	s.ok("checkout", "--", "f.txt")
	got, _ := s.read("f.txt")
	assert.Equal(t, "two", got)

	id := strings.TrimSpace(s.ok("find", "version one"))
	s.ok("checkout", id[:8], "--", "f.txt")
	got, _ = s.read("f.txt")
	assert.Equal(t, "one", got)

	s.fails("File does not exist in that commit.", "checkout", "--", "nothing.txt")

	s.ok("checkout", "--", "f.txt")
	s.ok("branch", "side")
	s.ok("checkout", "side")
	s.write("side.txt", "s")
	s.ok("add", "side.txt")
	s.ok("commit", "side work")
	s.ok("checkout", "main")
	_, exists := s.read("side.txt")
	assert.False(t, exists)

	branches := s.ok("branches")
	assert.Contains(t, branches, "*main")
	assert.Contains(t, branches, " side ")

	s.ok("rm-branch", "side")
	s.fails("A branch with that name does not exist.", "rm-branch", "side")
	s.fails("Cannot remove the current branch.", "rm-branch", "main")
}

func TestReset(t *testing.T) {
	s := newSession(t)
	s.ok("init")
	s.write("a.txt", "a")
	s.ok("add", "a.txt")
	s.ok("commit", "add a")
	first := strings.TrimSpace(s.ok("find", "add a"))
	s.write("b.txt", "b")
	s.ok("add", "b.txt")
	s.ok("commit", "add b")

	s.ok("reset", first[:10])
	_, exists := s.read("b.txt")
	assert.False(t, exists)
	assert.Equal(t, 2, strings.Count(s.ok("log"), "commit "))
}

func TestMergeOutcomes(t *testing.T) {
	s := newSession(t)
	s.ok("init")
	s.write("f.txt", "x")
	s.ok("add", "f.txt")
	s.ok("commit", "base")
	s.ok("branch", "other")

	s.ok("checkout", "other")
	s.write("f.txt", "z\n")
	s.ok("add", "f.txt")
	s.ok("commit", "other edit")
	s.ok("checkout", "main")

	s.ok("branch", "ff")
	s.ok("checkout", "ff")
	assert.Contains(t, s.ok("merge", "other"), "Current branch fast-forwarded.")
	got, _ := s.read("f.txt")
	assert.Equal(t, "z\n", got)

	s.ok("checkout", "main")
	s.write("f.txt", "y\n")
	s.ok("add", "f.txt")
	s.ok("commit", "main edit")

	res := s.fails("Encountered a merge conflict.", "merge", "other")
	assert.Contains(t, res.out, "f.txt")
	got, _ = s.read("f.txt")
	assert.Equal(t, "<<<<<<< HEAD\ny\n=======\nz\n>>>>>>>\n", got)
}

func TestMergeCommit(t *testing.T) {
	s := newSession(t)
	s.ok("init")
	s.write("f.txt", "base")
	s.ok("add", "f.txt")
	s.ok("commit", "base")
	s.ok("branch", "other")

	s.write("main.txt", "m")
	s.ok("add", "main.txt")
	s.ok("commit", "main work")

	s.ok("checkout", "other")
	s.write("other.txt", "o")
	s.ok("add", "other.txt")
	s.ok("commit", "other work")
	s.ok("checkout", "main")

	assert.Contains(t, s.ok("merge", "other"), "Merged other.")
	got, ok := s.read("other.txt")
	require.True(t, ok)
	assert.Equal(t, "o", got)
	assert.Contains(t, s.ok("log"), "Merged other with main.")
}

func TestRemotes(t *testing.T) {
	a := newSession(t)
	a.ok("init")
	b := newSession(t)
	b.fs = a.fs
	b.cwd = "/b"
	b.ok("init")

	a.write("f.txt", "from a")
	a.ok("add", "f.txt")
	a.ok("commit", "a1")

	b.ok("add-remote", "up", "../w/.lvc")
	b.fails("A remote with that name already exists.", "add-remote", "up", "/w")
	b.fails("That remote does not have that branch.", "fetch", "up", "nope")

	out := b.ok("fetch", "up", "main")
	assert.Contains(t, out, "up/main ->")
	assert.Contains(t, b.ok("branches"), "up/main")
	_, exists := b.read("f.txt")
	assert.False(t, exists, "fetch leaves the working tree alone")

	assert.Contains(t, b.ok("merge", "up/main"), "Current branch fast-forwarded.")
	got, _ := b.read("f.txt")
	assert.Equal(t, "from a", got)

	a.write("g.txt", "g")
	a.ok("add", "g.txt")
	a.ok("commit", "a2")
	assert.Contains(t, b.ok("pull", "up", "main"), "Current branch fast-forwarded.")
	got, _ = b.read("g.txt")
	assert.Equal(t, "g", got)

	a.ok("add-remote", "origin", "/b")
	a.write("h.txt", "h")
	a.ok("add", "h.txt")
	a.ok("commit", "a3")
	out = a.ok("push", "origin", "main")
	assert.Contains(t, out, "origin/main ->")
	assert.Contains(t, out, "(1 commits, 1 objects)")
	assert.Contains(t, b.ok("log"), "a3")

	a.ok("rm-remote", "origin")
	a.fails("A remote with that name does not exist.", "rm-remote", "origin")
	a.fails("Remote directory not found.", "push", "origin", "main")

	a.ok("add-remote", "ghost", "/nowhere")
	a.fails("Remote directory not found.", "push", "ghost", "main")
}

func TestVerify(t *testing.T) {
	s := newSession(t)
	s.ok("init")
	s.write("f.txt", "payload")
	s.ok("add", "f.txt")
	s.ok("commit", "one")
	s.ok("add-remote", "self", "/w")

	out := s.ok("verify")
	assert.Contains(t, out, "Scan complete")

	r, err := repo.Open("/w", repo.WithFS(s.fs))
	require.NoError(t, err)
	ids, err := r.Objects.List()
	require.NoError(t, err)
	require.Len(t, ids, 1)
	require.NoError(t, s.fs.WriteFile(r.Objects.Path(ids[0]), []byte("junk"), 0o644))

	res := s.fails("Repository verification failed.", "verify")
	assert.Contains(t, res.out, "Damaged")
	assert.Contains(t, res.out, ids[0])

	res = s.run("push", "self", "main")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.err, "lvc verify")
}

func TestLogLevelFlag(t *testing.T) {
	t.Setenv(logging.EnvLevel, "")
	s := newSession(t)
	s.ok("init")

	res := s.run("status", "--log-level", "debug")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.err, "operation complete")

	res = s.run("status")
	require.Equal(t, 0, res.code)
	assert.Empty(t, res.err)
}

func TestHelp(t *testing.T) {
	s := newSession(t)
	out := s.ok("help")
	for _, name := range []string{"checkout", "global-log", "add-remote", "verify"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, s.ok("help", "merge"), "fast-forwarded")
}
