package middleware

import (
	"fmt"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/repo/object"
)

// WithHeadIntegrityCheck refuses to run when a blob tracked by the current
// head is missing or damaged. It must run after WithRepository.
func WithHeadIntegrityCheck() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				head, err := ctx.Repo.Head()
				if err != nil {
					return err
				}
				for _, path := range head.Paths() {
					id, _ := head.Blob(path)
					status, err := ctx.Repo.Objects.VerifyObject(id)
					if status != object.OK {
						ctx.Logger.Warn("integrity check failed", "path", path, "object", id, "status", status, "error", err)
						return fmt.Errorf("object %s for %s is %s; run `lvc verify` for details", id, path, status)
					}
				}
				return cmd.Run(ctx)
			},
		}
	}
}
