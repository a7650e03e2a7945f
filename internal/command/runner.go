package command

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/logging"
	"github.com/keshon/lvc/internal/repo"
	"github.com/keshon/lvc/internal/repo/meta"
)

// Env is the process environment a command line runs in.
type Env struct {
	Cwd    string
	Stdout io.Writer
	Stderr io.Writer
	FS     fs.FS
	Clock  func() time.Time
}

// DefaultEnv is the real process environment.
func DefaultEnv() Env {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return Env{
		Cwd:    cwd,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		FS:     fs.NewOSFS(),
		Clock:  time.Now,
	}
}

// userErrors are reported by their own message, whatever wraps them.
var userErrors = []error{
	ErrBadArguments,
	ErrNoCommand,
	ErrUnknownCommand,
	repo.ErrNotARepository,
	repo.ErrAlreadyInitialized,
	repo.ErrEmptyCommit,
	repo.ErrNothingToCommit,
	repo.ErrCommitNotFound,
	repo.ErrFileNotFound,
	repo.ErrNothingToRemove,
	repo.ErrNoOpCheckout,
	repo.ErrUntrackedObstruction,
	repo.ErrPathNotInCommit,
	repo.ErrNoMatchingCommit,
	repo.ErrBranchExists,
	repo.ErrNoSuchBranch,
	repo.ErrCannotDeleteCurrent,
	meta.ErrInvalidBranchName,
	repo.ErrUncommittedChanges,
	repo.ErrSelfMerge,
	repo.ErrAlreadyAncestor,
	repo.ErrNoCommonAncestor,
	repo.ErrMergeConflict,
	repo.ErrRemoteExists,
	repo.ErrNoSuchRemote,
	repo.ErrRemoteNotFound,
	repo.ErrRemoteBranchNotFound,
	repo.ErrRejectNonFastForward,
	repo.ErrDigestMismatch,
	repo.ErrSelfRemote,
}

// Message is the line printed for err.
func Message(err error) string {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}

// Execute runs one command line and returns the process exit code.
// It is the only place an error turns into output and a non-zero status.
func Execute(env Env, args []string) int {
	if args == nil {
		args = []string{} // cobra falls back to os.Args on nil
	}
	root := NewRoot(env)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(env.Stderr, Message(err))
		return 1
	}
	return 0
}

// NewRoot builds a fresh cobra tree holding every registered command.
func NewRoot(env Env) *cobra.Command {
	var level string
	root := &cobra.Command{
		Use:           "lvc",
		Short:         "Local version control",
		Long:          "lvc tracks snapshots of a directory tree in a local .lvc repository.",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return ErrNoCommand
			}
			return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&level, "log-level", "", "log level: debug, info, warn, error (default from "+logging.EnvLevel+" or config)")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrBadArguments, err)
	})
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)

	for _, c := range AllCommands() {
		root.AddCommand(bind(c, env, &level))
	}
	return root
}

func bind(c Command, env Env, level *string) *cobra.Command {
	cc := &cobra.Command{
		Use:     c.Usage(),
		Aliases: c.Aliases(),
		Short:   c.Brief(),
		Long:    c.Help(),
		Args:    c.Args(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := &Context{
				Args:     args,
				Dash:     cmd.ArgsLenAtDash(),
				Cmd:      cmd,
				Cwd:      env.Cwd,
				Out:      env.Stdout,
				Err:      env.Stderr,
				FS:       env.FS,
				Clock:    env.Clock,
				LogLevel: *level,
				Logger:   logging.New(env.Stderr, logging.ResolveLevel(*level, "")),
			}
			return c.Run(ctx)
		},
	}
	c.Flags(cc)
	return cc
}
