package branches

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "branches" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "branches" }
func (c *Command) Brief() string     { return "List branches and tracking refs" }
func (c *Command) Help() string {
	return `List every branch with the commit it points at.
Tracking refs created by fetch appear as <remote>/<branch>.`
}
func (c *Command) Args() cobra.PositionalArgs { return command.NoArgs() }
func (c *Command) Flags(cmd *cobra.Command)   {}

func (c *Command) Run(ctx *command.Context) error {
	for _, b := range ctx.Repo.Branches() {
		name := " " + b.Name
		if b.Current {
			name = command.Current(b.Name)
		}
		fmt.Fprintf(ctx.Out, "%s %s\n", name, command.Muted(command.ShortID(b.Head)))
	}
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
