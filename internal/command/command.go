// Package command is the lvc command tree. Verb packages register
// themselves from init; Execute assembles a cobra root from the registry.
package command

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/repo"
)

// Command represents a cli command
type Command interface {
	Name() string
	Aliases() []string
	Usage() string
	Brief() string
	Help() string
	Args() cobra.PositionalArgs
	Flags(cmd *cobra.Command)
	Run(ctx *Context) error
}

// Context represents a cli context
type Context struct {
	Args []string
	Dash int // number of args before "--", -1 when absent
	Cmd  *cobra.Command

	Cwd    string
	Out    io.Writer
	Err    io.Writer
	FS     fs.FS
	Clock  func() time.Time
	Logger *log.Logger

	LogLevel string // --log-level as given, possibly empty
	Repo     *repo.Repository
}

// RepoOptions returns the options every repository opened by a command shares.
func (ctx *Context) RepoOptions() []repo.Option {
	opts := []repo.Option{repo.WithFS(ctx.FS), repo.WithLogger(ctx.Logger)}
	if ctx.Clock != nil {
		opts = append(opts, repo.WithClock(ctx.Clock))
	}
	return opts
}

// Path converts a user-supplied file operand into a repository path.
func (ctx *Context) Path(arg string) (string, error) {
	return ctx.Repo.Tree.Rel(ctx.Cwd, arg)
}
