package rm_branch

import (
	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "rm-branch" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "rm-branch <name>" }
func (c *Command) Brief() string     { return "Delete a branch pointer" }
func (c *Command) Help() string {
	return `Delete a branch. Commits made on it are kept.
The current branch cannot be deleted.`
}
func (c *Command) Args() cobra.PositionalArgs { return command.ExactArgs(1) }
func (c *Command) Flags(cmd *cobra.Command)   {}

func (c *Command) Run(ctx *command.Context) error {
	return ctx.Repo.DeleteBranch(ctx.Args[0])
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
