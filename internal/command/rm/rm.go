package rm

import (
	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "rm" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "rm <file>" }
func (c *Command) Brief() string     { return "Unstage a file or stop tracking it" }
func (c *Command) Help() string {
	return `Unstage a staged file. If the file is tracked by the current commit,
mark it for removal and delete it from the working tree.`
}
func (c *Command) Args() cobra.PositionalArgs { return command.ExactArgs(1) }
func (c *Command) Flags(cmd *cobra.Command)   {}

func (c *Command) Run(ctx *command.Context) error {
	path, err := ctx.Path(ctx.Args[0])
	if err != nil {
		return err
	}
	return ctx.Repo.Remove(path)
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
