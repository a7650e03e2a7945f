package middleware

import (
	"github.com/keshon/lvc/internal/command"
)

// WithDebugArgsPrint logs the operands a command was invoked with.
func WithDebugArgsPrint() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				ctx.Logger.Debug("invoke", "command", cmd.Name(), "args", ctx.Args)
				return cmd.Run(ctx)
			},
		}
	}
}
