package pull

import (
	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
	"github.com/keshon/lvc/internal/repo/meta"
)

type Command struct{}

func (c *Command) Name() string      { return "pull" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "pull <remote> <branch>" }
func (c *Command) Brief() string     { return "Fetch a remote branch and merge it" }
func (c *Command) Help() string {
	return `Fetch <remote> <branch>, then merge the tracking ref <remote>/<branch>
into the current branch.`
}
func (c *Command) Args() cobra.PositionalArgs { return command.ExactArgs(2) }
func (c *Command) Flags(cmd *cobra.Command)   {}

func (c *Command) Run(ctx *command.Context) error {
	remote, branch := ctx.Args[0], ctx.Args[1]
	res, err := ctx.Repo.Pull(remote, branch)
	return command.ReportMerge(ctx.Out, meta.TrackingRef(remote, branch), res, err)
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
