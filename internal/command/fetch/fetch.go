package fetch

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
	"github.com/keshon/lvc/internal/repo/meta"
)

type Command struct{}

func (c *Command) Name() string      { return "fetch" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "fetch <remote> <branch>" }
func (c *Command) Brief() string     { return "Copy a remote branch into a tracking ref" }
func (c *Command) Help() string {
	return `Copy the history of a remote branch into this repository and point the
tracking ref <remote>/<branch> at its head. Local branches and the working
tree are not touched.`
}
func (c *Command) Args() cobra.PositionalArgs { return command.ExactArgs(2) }
func (c *Command) Flags(cmd *cobra.Command)   {}

func (c *Command) Run(ctx *command.Context) error {
	remote, branch := ctx.Args[0], ctx.Args[1]
	t, err := ctx.Repo.Fetch(remote, branch)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "%s -> %s (%d commits, %d objects)\n",
		meta.TrackingRef(remote, branch), command.ShortID(t.Head), t.Commits, t.Objects)
	return nil
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
