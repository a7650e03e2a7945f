package log

import (
	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "log" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "log" }
func (c *Command) Brief() string     { return "Show the history of the current branch" }
func (c *Command) Help() string {
	return `Show every commit from the current head back to the initial commit,
newest first.`
}
func (c *Command) Args() cobra.PositionalArgs { return command.NoArgs() }
func (c *Command) Flags(cmd *cobra.Command)   {}

func (c *Command) Run(ctx *command.Context) error {
	commits, err := ctx.Repo.Log()
	if err != nil {
		return err
	}
	for _, commit := range commits {
		command.PrintCommit(ctx.Out, commit)
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
