package commit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "commit" }
func (c *Command) Aliases() []string { return []string{"ci"} }
func (c *Command) Usage() string     { return "commit <message>" }
func (c *Command) Brief() string     { return "Commit staged changes to the current branch" }
func (c *Command) Help() string {
	return `Create a new commit with the staged changes.

Usage:
  commit "<message>"   - the message must not be empty`
}

// Args accepts a missing operand so it reports as an empty message
// rather than as bad operands.
func (c *Command) Args() cobra.PositionalArgs { return command.RangeArgs(0, 1) }
func (c *Command) Flags(cmd *cobra.Command)   {}

func (c *Command) Run(ctx *command.Context) error {
	var message string
	if len(ctx.Args) == 1 {
		message = ctx.Args[0]
	}

	commit, err := ctx.Repo.Commit(message)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "[%s %s] %s\n", ctx.Repo.CurrentBranch(), command.ShortID(commit.ID), commit.Message)
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
