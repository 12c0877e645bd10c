package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/moasq/recent/internal/selector"
	"gopkg.in/yaml.v3"
)

// Defaults used when the config file is missing or leaves a key unset.
const (
	// DefaultMaxBranches bounds how many branches are listed.
	DefaultMaxBranches = 200
	// DefaultVisibleBranches is the number of menu rows drawn at once.
	DefaultVisibleBranches = 5
	// DefaultTitle is the menu title.
	DefaultTitle = selector.DefaultTitle
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "RECENT_CONFIG"

// ErrInvalid is returned for config values outside their allowed range.
var ErrInvalid = errors.New("invalid config")

// Config holds the CLI configuration.
type Config struct {
	MaxBranches     int    `yaml:"max_branches"`
	VisibleBranches int    `yaml:"visible_branches"`
	Title           string `yaml:"title"`
	// RecordHistory controls whether successful checkouts are written to
	// the history file. Pointer so an absent key keeps the default.
	RecordHistory *bool `yaml:"record_history"`

	// StateDir is where history is stored (~/.config/recent).
	StateDir string `yaml:"-"`
	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

// Overrides are command-line values that take precedence over the file.
// Zero values leave the file value alone.
type Overrides struct {
	MaxBranches     int
	VisibleBranches int
	NoRecord        bool
}

// Default returns the built-in configuration.
func Default() *Config {
	record := true
	return &Config{
		MaxBranches:     DefaultMaxBranches,
		VisibleBranches: DefaultVisibleBranches,
		Title:           DefaultTitle,
		RecordHistory:   &record,
		StateDir:        defaultStateDir(),
	}
}

// Load reads the config from $RECENT_CONFIG or the default location. A
// missing file is not an error.
func Load() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = filepath.Join(defaultStateDir(), "config.yaml")
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the config at path, filling unset keys with defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Path = path
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	if cfg.RecordHistory == nil {
		record := true
		cfg.RecordHistory = &record
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks numeric limits.
func (c *Config) Validate() error {
	if c.MaxBranches < 1 {
		return fmt.Errorf("%w: max_branches must be at least 1, got %d", ErrInvalid, c.MaxBranches)
	}
	if c.VisibleBranches < 1 {
		return fmt.Errorf("%w: visible_branches must be at least 1, got %d", ErrInvalid, c.VisibleBranches)
	}
	return nil
}

// ApplyOverrides merges command-line values into c and revalidates.
func (c *Config) ApplyOverrides(o Overrides) error {
	if o.MaxBranches != 0 {
		c.MaxBranches = o.MaxBranches
	}
	if o.VisibleBranches != 0 {
		c.VisibleBranches = o.VisibleBranches
	}
	if o.NoRecord {
		record := false
		c.RecordHistory = &record
	}
	return c.Validate()
}

// ShouldRecord reports whether checkouts are written to history.
func (c *Config) ShouldRecord() bool {
	return c.RecordHistory == nil || *c.RecordHistory
}

func defaultStateDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, herr := os.UserHomeDir()
		if herr != nil {
			home = "."
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "recent")
}
