package repo

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/keshon/lvc/internal/config"
	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/logging"
	"github.com/keshon/lvc/internal/repo/meta"
	"github.com/keshon/lvc/internal/repo/object"
	"github.com/keshon/lvc/internal/repo/stage"
	"github.com/keshon/lvc/internal/repo/worktree"
)

// Repository is one opened repository. Every field is loaded fresh by Open;
// nothing is shared between Repository values.
type Repository struct {
	Config   *config.RepoConfig
	Settings *config.Settings
	FS       fs.FS

	Objects *object.Store
	Graph   *meta.Graph
	State   *meta.State
	Stage   *stage.Area
	Tree    *worktree.Tree

	log *log.Logger
	now func() time.Time
}

type options struct {
	fs     fs.FS
	logger *log.Logger
	clock  func() time.Time
}

// Option configures Init and Open.
type Option func(*options)

// WithFS replaces the OS filesystem.
func WithFS(fsys fs.FS) Option { return func(o *options) { o.fs = fsys } }

// WithLogger sets the operation logger.
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

// WithClock sets the source of commit timestamps.
func WithClock(now func() time.Time) Option { return func(o *options) { o.clock = now } }

func buildOptions(opts []Option) options {
	o := options{fs: fs.NewOSFS(), clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	return o
}

// Exists reports whether root holds a repository directory.
func Exists(fsys fs.FS, root string) bool {
	return fsys.IsDir(config.NewRepoConfig(root).RepoDir)
}

// Init creates a repository at root with the initial commit on the default
// branch. settings may be nil for defaults.
func Init(root string, settings *config.Settings, opts ...Option) (r *Repository, err error) {
	o := buildOptions(opts)
	done := logging.Op(o.logger, "init", "root", root)
	defer func() { done(err) }()

	cfg := config.NewRepoConfig(root)
	if o.fs.Exists(cfg.RepoDir) {
		return nil, ErrAlreadyInitialized
	}
	if settings == nil {
		settings = config.NewSettings()
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	for _, d := range []string{cfg.RepoDir, cfg.CommitsDir(), cfg.StagedDir(), cfg.RemovedDir()} {
		if err := o.fs.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create dir %q: %w", d, err)
		}
	}
	if err := config.SaveSettings(o.fs, cfg, settings); err != nil {
		return nil, err
	}

	r, err = assemble(cfg, settings, o)
	if err != nil {
		return nil, err
	}

	// identical in every repository
	initial, err := r.Graph.Create(meta.InitialMessage, nil, time.Unix(0, 0), meta.Changes{})
	if err != nil {
		return nil, err
	}
	if err := r.Graph.Put(initial); err != nil {
		return nil, err
	}
	r.State = meta.NewState(settings.DefaultBranch, initial.ID)
	if err := r.saveState(); err != nil {
		return nil, err
	}
	return r, nil
}

// Open loads the repository rooted exactly at root.
func Open(root string, opts ...Option) (*Repository, error) {
	o := buildOptions(opts)
	cfg := config.NewRepoConfig(root)
	if !o.fs.IsDir(cfg.RepoDir) {
		return nil, fmt.Errorf("%w: %s", ErrNotARepository, root)
	}
	settings, err := config.LoadSettings(o.fs, cfg)
	if err != nil {
		return nil, err
	}
	r, err := assemble(cfg, settings, o)
	if err != nil {
		return nil, err
	}
	if r.State, err = meta.LoadState(o.fs, cfg.StateFile()); err != nil {
		return nil, err
	}
	return r, nil
}

func assemble(cfg *config.RepoConfig, settings *config.Settings, o options) (*Repository, error) {
	objects, err := object.NewStore(o.fs, cfg.ObjectsDir(), settings.HashCode(), settings.Compress)
	if err != nil {
		return nil, err
	}
	ignore, err := worktree.LoadIgnore(o.fs, cfg, settings.Ignore)
	if err != nil {
		return nil, err
	}
	return &Repository{
		Config:   cfg,
		Settings: settings,
		FS:       o.fs,
		Objects:  objects,
		Graph:    meta.NewGraph(o.fs, cfg.CommitsDir(), objects),
		Stage:    stage.New(o.fs, cfg),
		Tree:     worktree.New(o.fs, cfg.WorkingTreeDir, ignore, settings.HashCode()),
		log:      o.logger,
		now:      o.clock,
	}, nil
}

// Logger returns the logger operations report to.
func (r *Repository) Logger() *log.Logger { return r.log }

// SetLogger replaces the logger operations report to.
func (r *Repository) SetLogger(l *log.Logger) { r.log = l }

func (r *Repository) saveState() error {
	return r.State.Save(r.FS, r.Config.StateFile())
}

// CurrentBranch returns the checked out branch.
func (r *Repository) CurrentBranch() string { return r.State.Current }

// Head returns the commit the current branch points at.
func (r *Repository) Head() (*meta.Commit, error) {
	c, err := r.Graph.Get(r.State.Head())
	if err != nil {
		return nil, fmt.Errorf("failed to read head of %s: %w", r.State.Current, err)
	}
	return c, nil
}

// ResolveCommit expands an abbreviated ID and loads the commit.
func (r *Repository) ResolveCommit(id string) (*meta.Commit, error) {
	full, err := r.Graph.Resolve(id)
	if err != nil {
		return nil, err
	}
	c, err := r.Graph.Get(full)
	if err != nil {
		if errors.Is(err, meta.ErrCommitNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCommitNotFound, id)
		}
		return nil, err
	}
	return c, nil
}
