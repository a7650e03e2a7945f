package command

import (
	"fmt"
	"io"

	"github.com/keshon/lvc/internal/repo"
	"github.com/keshon/lvc/internal/repo/meta"
)

// DateFormat is how commit timestamps are printed.
const DateFormat = "Mon Jan 2 15:04:05 2006 -0700"

// ShortID abbreviates a commit or object ID for one-line output.
func ShortID(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}

// PrintCommit writes one log entry.
func PrintCommit(w io.Writer, c *meta.Commit) {
	fmt.Fprintln(w, Muted("==="))
	fmt.Fprintf(w, "commit %s\n", c.ID)
	fmt.Fprintf(w, "%s %s\n", Muted("Date:"), c.Timestamp.Local().Format(DateFormat))
	fmt.Fprintln(w, c.Message)
	fmt.Fprintln(w)
}

// ReportMerge prints the outcome of merge or pull and passes err through.
// Conflicting paths are listed before the error reaches the dispatcher.
func ReportMerge(w io.Writer, branch string, res *repo.MergeResult, err error) error {
	if ce, ok := repo.IsConflict(err); ok {
		for _, p := range ce.Paths {
			fmt.Fprintf(w, "%s %s\n", Problem("conflict:"), p)
		}
		return err
	}
	if err != nil {
		return err
	}
	switch res.Kind {
	case repo.FastForwarded:
		fmt.Fprintln(w, "Current branch fast-forwarded.")
	default:
		fmt.Fprintf(w, "Merged %s. [%s]\n", branch, ShortID(res.Commit))
	}
	return nil
}
