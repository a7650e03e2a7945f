package reset

import (
	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "reset" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "reset <commit>" }
func (c *Command) Brief() string     { return "Move the current branch to a commit" }
func (c *Command) Help() string {
	return `Check out every file tracked by the given commit, remove tracked files
it does not contain, clear the staging area and point the current branch at it.
Abbreviated IDs work.`
}
func (c *Command) Args() cobra.PositionalArgs { return command.ExactArgs(1) }
func (c *Command) Flags(cmd *cobra.Command)   {}

func (c *Command) Run(ctx *command.Context) error {
	return ctx.Repo.Reset(ctx.Args[0])
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
