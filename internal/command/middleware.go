package command

// Middleware wraps a command with behavior that runs around it.
type Middleware func(Command) Command

// WrappedCommand is a command whose Run is replaced by a middleware.
type WrappedCommand struct {
	Command
	Wrap func(ctx *Context) error
}

// Run executes the wrapped command
func (w *WrappedCommand) Run(ctx *Context) error {
	if w.Wrap != nil {
		return w.Wrap(ctx)
	}
	return w.Command.Run(ctx)
}

// ApplyMiddlewares wraps cmd so the first middleware listed runs first.
func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for i := len(mws) - 1; i >= 0; i-- {
		cmd = mws[i](cmd)
	}
	return cmd
}
