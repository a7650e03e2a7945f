package add_remote

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "add-remote" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "add-remote <name> <path>" }
func (c *Command) Brief() string     { return "Register another local repository as a remote" }
func (c *Command) Help() string {
	return `Record a remote repository under a name.

The path may point at the remote working tree or at its .lvc directory.
Relative paths are resolved against the current directory and may use
"/" as the separator on every platform.`
}
func (c *Command) Args() cobra.PositionalArgs { return command.ExactArgs(2) }
func (c *Command) Flags(cmd *cobra.Command)   {}

func (c *Command) Run(ctx *command.Context) error {
	path := filepath.FromSlash(ctx.Args[1])
	if !filepath.IsAbs(path) {
		path = filepath.Join(ctx.Cwd, path)
	}
	return ctx.Repo.AddRemote(ctx.Args[0], path)
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithRepository(),
			middleware.WithDebugArgsPrint(),
		),
	)
}
