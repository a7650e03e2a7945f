package init

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/config"
	"github.com/keshon/lvc/internal/middleware"
	"github.com/keshon/lvc/internal/repo"
)

type Command struct {
	compress bool
	hash     string
}

func (c *Command) Name() string      { return "init" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "init [--compress] [--hash <name>]" }
func (c *Command) Brief() string     { return "Create an empty repository in the current directory" }
func (c *Command) Help() string {
	return `Create a new repository in the current directory.

The repository starts on branch "main" with a single commit,
"initial commit", dated at the Unix epoch.

Options:
  --compress       gzip stored objects
  --hash <name>    multihash function name for object IDs (default: sha2-256)`
}
func (c *Command) Args() cobra.PositionalArgs { return command.NoArgs() }

func (c *Command) Flags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&c.compress, "compress", false, "gzip stored objects")
	cmd.Flags().StringVar(&c.hash, "hash", config.DefaultHash, "hash function for object IDs")
}

func (c *Command) Run(ctx *command.Context) error {
	settings := config.NewSettings()
	settings.Compress = c.compress
	settings.Hash = c.hash

	r, err := repo.Init(ctx.Cwd, settings, ctx.RepoOptions()...)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Initialized empty lvc repository in %s\n", r.Config.RepoDir)
	return nil
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
		),
	)
}
