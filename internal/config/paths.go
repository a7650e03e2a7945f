package config

import "path/filepath"

// RepoConfig resolves every on-disk location of one repository.
type RepoConfig struct {
	WorkingTreeDir string // user files live here
	RepoDir        string // WorkingTreeDir/.lvc
}

// NewRepoConfig builds the layout for a working tree root.
func NewRepoConfig(root string) *RepoConfig {
	root = filepath.Clean(root)
	return &RepoConfig{
		WorkingTreeDir: root,
		RepoDir:        filepath.Join(root, RepoDir),
	}
}

func (c *RepoConfig) CommitsDir() string   { return filepath.Join(c.RepoDir, CommitsDir) }
func (c *RepoConfig) StagedDir() string    { return filepath.Join(c.RepoDir, StagedDir) }
func (c *RepoConfig) RemovedDir() string   { return filepath.Join(c.RepoDir, RemovedDir) }
func (c *RepoConfig) StateFile() string    { return filepath.Join(c.RepoDir, StateFile) }
func (c *RepoConfig) SettingsFile() string { return filepath.Join(c.RepoDir, SettingsFile) }
func (c *RepoConfig) IgnoreFile() string   { return filepath.Join(c.WorkingTreeDir, IgnoreFile) }

// ObjectsDir is where loose blobs are stored: directly inside the repository directory.
func (c *RepoConfig) ObjectsDir() string { return c.RepoDir }
