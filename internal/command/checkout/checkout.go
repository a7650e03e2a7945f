package checkout

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "checkout" }
func (c *Command) Aliases() []string { return []string{"co"} }
func (c *Command) Usage() string     { return "checkout <branch> | -- <file> | <commit> -- <file>" }
func (c *Command) Brief() string     { return "Switch branches or restore a file" }
func (c *Command) Help() string {
	return `Switch branches or restore a file from a commit.

Usage:
  checkout <branch>              - switch to branch and sync the working tree
  checkout -- <file>             - restore file from the current head
  checkout <commit> -- <file>    - restore file from commit (abbreviated IDs work)

Restoring a file does not stage it.`
}
func (c *Command) Args() cobra.PositionalArgs { return command.RangeArgs(1, 2) }
func (c *Command) Flags(cmd *cobra.Command)   {}

func (c *Command) Run(ctx *command.Context) error {
	switch {
	case ctx.Dash < 0 && len(ctx.Args) == 1:
		return ctx.Repo.CheckoutBranch(ctx.Args[0])
	case ctx.Dash == 0 && len(ctx.Args) == 1:
		return c.restore(ctx, "", ctx.Args[0])
	case ctx.Dash == 1 && len(ctx.Args) == 2:
		return c.restore(ctx, ctx.Args[0], ctx.Args[1])
	default:
		return fmt.Errorf("%w: %v", command.ErrBadArguments, ctx.Args)
	}
}

func (c *Command) restore(ctx *command.Context, commitID, file string) error {
	path, err := ctx.Path(file)
	if err != nil {
		return err
	}
	return ctx.Repo.CheckoutPath(commitID, path)
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
