package push

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "push" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "push <remote> <branch>" }
func (c *Command) Brief() string     { return "Append local history to a remote branch" }
func (c *Command) Help() string {
	return `Copy the current branch's commits and objects to the remote and move
the remote branch to the local head. The remote branch must be absent or
an ancestor of the local head; otherwise pull first.`
}
func (c *Command) Args() cobra.PositionalArgs { return command.ExactArgs(2) }
func (c *Command) Flags(cmd *cobra.Command)   {}

func (c *Command) Run(ctx *command.Context) error {
	remote, branch := ctx.Args[0], ctx.Args[1]
	t, err := ctx.Repo.Push(remote, branch)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "%s/%s -> %s (%d commits, %d objects)\n",
		remote, branch, command.ShortID(t.Head), t.Commits, t.Objects)
	return nil
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithRepository(),
			middleware.WithHeadIntegrityCheck(),
			middleware.WithDebugArgsPrint(),
		),
	)
}
