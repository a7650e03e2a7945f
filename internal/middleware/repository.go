package middleware

import (
	"fmt"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/config"
	"github.com/keshon/lvc/internal/logging"
	"github.com/keshon/lvc/internal/repo"
)

// WithRepository opens the repository enclosing the working directory
// into ctx.Repo. The logger is rebuilt so the repository's log_level
// applies when neither the flag nor the environment set one.
func WithRepository() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				root := config.ResolveWorkingTreeRoot(ctx.FS, ctx.Cwd)
				if root == "" {
					return fmt.Errorf("%w: %s", repo.ErrNotARepository, ctx.Cwd)
				}
				r, err := repo.Open(root, ctx.RepoOptions()...)
				if err != nil {
					return err
				}
				ctx.Logger = logging.New(ctx.Err, logging.ResolveLevel(ctx.LogLevel, r.Settings.LogLevel))
				r.SetLogger(ctx.Logger)
				ctx.Repo = r
				return cmd.Run(ctx)
			},
		}
	}
}
