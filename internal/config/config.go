package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/multiformats/go-multihash"
	"gopkg.in/yaml.v3"

	"github.com/keshon/lvc/internal/fs"
)

const (
	RepoDir      = ".lvc"
	CommitsDir   = "commits"
	StagedDir    = "staged"
	RemovedDir   = "removed"
	StateFile    = "state.json"
	SettingsFile = "config.yaml"

	IgnoreFile = ".lvcignore"
)

const (
	DefaultBranch   = "main"
	DefaultHash     = "sha2-256"
	DefaultLogLevel = "warn"
)

// ErrInvalidSettings is returned when config.yaml holds values the repository cannot use.
var ErrInvalidSettings = errors.New("invalid repository settings")

// Settings is the user-editable part of a repository, stored as YAML.
// Hash and ID are fixed at init time.
type Settings struct {
	ID            string   `yaml:"id"`
	Hash          string   `yaml:"hash"`
	DefaultBranch string   `yaml:"default_branch"`
	Compress      bool     `yaml:"compress"`
	Ignore        []string `yaml:"ignore,omitempty"`
	LogLevel      string   `yaml:"log_level,omitempty"`
}

// NewSettings returns settings for a fresh repository with a new identity.
func NewSettings() *Settings {
	return &Settings{
		ID:            uuid.NewString(),
		Hash:          DefaultHash,
		DefaultBranch: DefaultBranch,
	}
}

// Validate fills defaults and checks the hash function is known to multihash.
func (s *Settings) Validate() error {
	if s.Hash == "" {
		s.Hash = DefaultHash
	}
	if s.DefaultBranch == "" {
		s.DefaultBranch = DefaultBranch
	}
	s.Hash = strings.ToLower(s.Hash)
	code, ok := multihash.Names[s.Hash]
	if !ok || code == multihash.IDENTITY {
		return fmt.Errorf("%w: unknown hash function %q", ErrInvalidSettings, s.Hash)
	}
	if _, err := multihash.Sum(nil, code, -1); err != nil {
		return fmt.Errorf("%w: hash function %q unavailable: %v", ErrInvalidSettings, s.Hash, err)
	}
	if s.ID != "" {
		if _, err := uuid.Parse(s.ID); err != nil {
			return fmt.Errorf("%w: bad repository id %q: %v", ErrInvalidSettings, s.ID, err)
		}
	}
	return nil
}

// HashCode returns the multihash code of the configured hash function.
func (s *Settings) HashCode() uint64 {
	return multihash.Names[s.Hash]
}

// LoadSettings reads config.yaml from the repository directory.
func LoadSettings(fsys fs.FS, cfg *RepoConfig) (*Settings, error) {
	data, err := fsys.ReadFile(cfg.SettingsFile())
	if err != nil {
		return nil, fmt.Errorf("failed to read settings %q: %w", cfg.SettingsFile(), err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings %q: %w", cfg.SettingsFile(), err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSettings writes config.yaml into the repository directory.
func SaveSettings(fsys fs.FS, cfg *RepoConfig, s *Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := fsys.MkdirAll(filepath.Dir(cfg.SettingsFile()), 0o755); err != nil {
		return fmt.Errorf("failed to create dir for settings: %w", err)
	}
	if err := fsys.WriteFile(cfg.SettingsFile(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings %q: %w", cfg.SettingsFile(), err)
	}
	return nil
}
