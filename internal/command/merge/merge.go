package merge

import (
	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "merge" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "merge <branch>" }
func (c *Command) Brief() string     { return "Merge a branch into the current branch" }
func (c *Command) Help() string {
	return `Merge the given branch into the current one.

If the current head is an ancestor of the branch, the current branch is
fast-forwarded. Otherwise a three-way merge against the split point runs
and a merge commit is created. Conflicting files are written with
<<<<<<< HEAD / ======= / >>>>>>> markers and nothing is committed.

Tracking refs such as origin/main can be merged like branches.`
}
func (c *Command) Args() cobra.PositionalArgs { return command.ExactArgs(1) }
func (c *Command) Flags(cmd *cobra.Command)   {}

func (c *Command) Run(ctx *command.Context) error {
	res, err := ctx.Repo.Merge(ctx.Args[0])
	return command.ReportMerge(ctx.Out, ctx.Args[0], res, err)
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
