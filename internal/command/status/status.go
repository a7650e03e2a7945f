package status

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
	"github.com/keshon/lvc/internal/repo"
)

type Command struct{}

func (c *Command) Name() string      { return "status" }
func (c *Command) Aliases() []string { return []string{"st"} }
func (c *Command) Usage() string     { return "status" }
func (c *Command) Brief() string     { return "Show branches, staged changes and working tree status" }
func (c *Command) Help() string {
	return `Show the working tree status.

Sections:
  Branches                                  the current branch is marked with *
  Staged Files                              added since the last commit
  Removed Files                             marked for removal
  Modifications Not Staged For Commit       changed or deleted without staging
  Untracked Files                           present but neither staged nor tracked`
}
func (c *Command) Args() cobra.PositionalArgs { return command.NoArgs() }
func (c *Command) Flags(cmd *cobra.Command)   {}

func (c *Command) Run(ctx *command.Context) error {
	st, err := ctx.Repo.Status()
	if err != nil {
		return err
	}

	branches := make([]string, 0, len(st.Branches))
	for _, b := range st.Branches {
		if b == st.Current {
			b = command.Current(b)
		}
		branches = append(branches, b)
	}
	section(ctx.Out, "Branches", branches)
	section(ctx.Out, "Staged Files", st.Staged)
	section(ctx.Out, "Removed Files", st.Removed)
	section(ctx.Out, "Modifications Not Staged For Commit", changes(st.Unstaged))
	section(ctx.Out, "Untracked Files", st.Untracked)
	return nil
}

func changes(list []repo.Change) []string {
	out := make([]string, 0, len(list))
	for _, ch := range list {
		out = append(out, fmt.Sprintf("%s (%s)", ch.Path, ch.Kind))
	}
	return out
}

func section(w io.Writer, title string, lines []string) {
	fmt.Fprintln(w, command.Header(title))
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintln(w)
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
