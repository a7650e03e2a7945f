package middleware_test

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/config"
	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/logging"
	"github.com/keshon/lvc/internal/middleware"
	"github.com/keshon/lvc/internal/repo"
)

type recorder struct {
	seen *command.Context
}

func (p *recorder) Name() string               { return "recorder" }
func (p *recorder) Aliases() []string          { return nil }
func (p *recorder) Usage() string              { return "recorder" }
func (p *recorder) Brief() string              { return "" }
func (p *recorder) Help() string               { return "" }
func (p *recorder) Args() cobra.PositionalArgs { return cobra.ArbitraryArgs }
func (p *recorder) Flags(*cobra.Command)       {}

func (p *recorder) Run(ctx *command.Context) error {
	p.seen = ctx
	return nil
}

func newContext(m fs.FS, cwd string) (*command.Context, *bytes.Buffer) {
	var errOut bytes.Buffer
	return &command.Context{
		Cwd:    cwd,
		Out:    &bytes.Buffer{},
		Err:    &errOut,
		FS:     m,
		Logger: logging.New(&errOut, ""),
	}, &errOut
}

func TestWithRepository(t *testing.T) {
	t.Setenv(logging.EnvLevel, "")
	m := fs.NewMemoryFS()
	settings := config.NewSettings()
	settings.LogLevel = "debug"
	_, err := repo.Init("/w", settings, repo.WithFS(m))
	require.NoError(t, err)
	require.NoError(t, m.MkdirAll("/w/a/b", 0o755))

	p := &recorder{}
	cmd := command.ApplyMiddlewares(p, middleware.WithRepository(), middleware.WithDebugArgsPrint())
	ctx, errOut := newContext(m, "/w/a/b")
	ctx.Args = []string{"x"}
	require.NoError(t, cmd.Run(ctx))

	require.NotNil(t, p.seen.Repo)
	assert.Equal(t, "/w", p.seen.Repo.Config.WorkingTreeDir)
	assert.Equal(t, log.DebugLevel, p.seen.Logger.GetLevel())
	assert.Same(t, p.seen.Logger, p.seen.Repo.Logger())
	assert.Contains(t, errOut.String(), "invoke")
}

func TestWithRepositoryFlagBeatsSetting(t *testing.T) {
	t.Setenv(logging.EnvLevel, "")
	m := fs.NewMemoryFS()
	settings := config.NewSettings()
	settings.LogLevel = "debug"
	_, err := repo.Init("/w", settings, repo.WithFS(m))
	require.NoError(t, err)

	p := &recorder{}
	ctx, _ := newContext(m, "/w")
	ctx.LogLevel = "error"
	require.NoError(t, middleware.WithRepository()(p).Run(ctx))
	assert.Equal(t, log.ErrorLevel, p.seen.Logger.GetLevel())
	assert.Same(t, p.seen.Logger, p.seen.Repo.Logger())
}

func TestWithRepositoryOutsideRepo(t *testing.T) {
	m := fs.NewMemoryFS()
	p := &recorder{}
	ctx, _ := newContext(m, "/elsewhere")
	err := middleware.WithRepository()(p).Run(ctx)
	assert.ErrorIs(t, err, repo.ErrNotARepository)
	assert.Nil(t, p.seen)
}

func TestWithHeadIntegrityCheck(t *testing.T) {
	m := fs.NewMemoryFS()
	r, err := repo.Init("/w", nil, repo.WithFS(m))
	require.NoError(t, err)
	require.NoError(t, r.Tree.Write("f.txt", []byte("data")))
	require.NoError(t, r.Add("f.txt"))
	head, err := r.Commit("one")
	require.NoError(t, err)

	p := &recorder{}
	cmd := command.ApplyMiddlewares(p, middleware.WithRepository(), middleware.WithHeadIntegrityCheck())

	ctx, _ := newContext(m, "/w")
	require.NoError(t, cmd.Run(ctx))
	require.NotNil(t, p.seen)

	blob, _ := head.Blob("f.txt")
	require.NoError(t, m.Remove(r.Objects.Path(blob)))

	p.seen = nil
	ctx, _ = newContext(m, "/w")
	err = cmd.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing")
	assert.Nil(t, p.seen)
}
