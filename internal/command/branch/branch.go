package branch

import (
	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "branch" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "branch <name>" }
func (c *Command) Brief() string     { return "Create a branch at the current head" }
func (c *Command) Help() string {
	return `Create a new branch pointing at the current head.
The current branch does not change.`
}
func (c *Command) Args() cobra.PositionalArgs { return command.ExactArgs(1) }
func (c *Command) Flags(cmd *cobra.Command)   {}

func (c *Command) Run(ctx *command.Context) error {
	return ctx.Repo.CreateBranch(ctx.Args[0])
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
