package rm_remote

import (
	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string               { return "rm-remote" }
func (c *Command) Aliases() []string          { return nil }
func (c *Command) Usage() string              { return "rm-remote <name>" }
func (c *Command) Brief() string              { return "Forget a remote" }
func (c *Command) Help() string               { return `Remove a remote. Tracking refs fetched from it are kept.` }
func (c *Command) Args() cobra.PositionalArgs { return command.ExactArgs(1) }
func (c *Command) Flags(cmd *cobra.Command)   {}

func (c *Command) Run(ctx *command.Context) error {
	return ctx.Repo.RemoveRemote(ctx.Args[0])
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
