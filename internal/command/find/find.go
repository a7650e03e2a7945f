package find

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "find" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "find <message>" }
func (c *Command) Brief() string     { return "Print IDs of commits whose message contains a string" }
func (c *Command) Help() string {
	return `Print the ID of every commit whose message contains the given text,
one per line.`
}
func (c *Command) Args() cobra.PositionalArgs { return command.ExactArgs(1) }
func (c *Command) Flags(cmd *cobra.Command)   {}

func (c *Command) Run(ctx *command.Context) error {
	ids, err := ctx.Repo.Find(ctx.Args[0])
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(ctx.Out, id)
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
