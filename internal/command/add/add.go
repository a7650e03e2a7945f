package add

import (
	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "add" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "add <file>" }
func (c *Command) Brief() string     { return "Stage a file for the next commit" }
func (c *Command) Help() string {
	return `Stage the current contents of a file.

Staging a file identical to the committed version unstages it instead.
Adding a file marked for removal cancels the removal.`
}
func (c *Command) Args() cobra.PositionalArgs { return command.ExactArgs(1) }
func (c *Command) Flags(cmd *cobra.Command)   {}

func (c *Command) Run(ctx *command.Context) error {
	path, err := ctx.Path(ctx.Args[0])
	if err != nil {
		return err
	}
	return ctx.Repo.Add(path)
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
