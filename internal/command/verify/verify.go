package verify

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
	"github.com/keshon/lvc/internal/repo/object"
)

var ErrVerifyFailed = errors.New("Repository verification failed.")

type Command struct{}

func (c *Command) Name() string      { return "verify" }
func (c *Command) Aliases() []string { return []string{"check"} }
func (c *Command) Usage() string     { return "verify" }
func (c *Command) Brief() string     { return "Verify repository integrity" }
func (c *Command) Help() string {
	return `Re-hash every stored object and commit record.

Reports damaged objects and commits, branches pointing at missing commits,
and blobs referenced by commits but missing from the store. Exits non-zero
when anything is wrong.`
}
func (c *Command) Args() cobra.PositionalArgs { return command.NoArgs() }
func (c *Command) Flags(cmd *cobra.Command)   {}

func (c *Command) Run(ctx *command.Context) error {
	start := time.Now()
	report, err := ctx.Repo.Verify()
	if err != nil {
		return err
	}

	objBad := problems(ctx.Out, "object", report.Objects)
	commitBad := problems(ctx.Out, "commit", report.Commits)
	for _, m := range report.Missing {
		fmt.Fprintf(ctx.Out, "%s blob %s (%s)\n", command.Problem("Missing"), m.ID, strings.Join(m.Paths, ", "))
	}

	fmt.Fprintf(ctx.Out, "\nScan complete in %s.\n", time.Since(start).Truncate(time.Millisecond))
	fmt.Fprintf(ctx.Out, "Objects: %d checked, %d bad   Commits: %d checked, %d bad   Missing blobs: %d\n",
		len(report.Objects), objBad, len(report.Commits), commitBad, len(report.Missing))

	if !report.OK() {
		return ErrVerifyFailed
	}
	return nil
}

func problems(w io.Writer, kind string, checks []object.Check) int {
	n := 0
	for _, c := range checks {
		if c.Status == object.OK {
			continue
		}
		n++
		line := fmt.Sprintf("%s %s %s", command.Problem(c.Status.String()), kind, c.ID)
		if c.Err != nil {
			line += ": " + c.Err.Error()
		}
		fmt.Fprintln(w, line)
	}
	return n
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
