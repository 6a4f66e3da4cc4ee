// Package config loads the denv configuration file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/denv/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the default config file location when set.
const EnvConfigPath = "DENV_CONFIG"

// Defaults applied when the config file is absent or fields are unset.
const (
	DefaultLoader    = "direnv"
	DefaultWatchFile = ".envrc"
	DefaultTimeout   = time.Minute
)

// Duration wraps time.Duration with YAML string parsing ("30s", "2m").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return zerr.Wrap(err, "invalid duration")
	}
	*d = Duration(parsed)
	return nil
}

// Config holds the denv settings.
type Config struct {
	// Loader is the environment loader executable.
	Loader string `yaml:"loader"`
	// Timeout bounds a single loader invocation. Zero disables the bound.
	Timeout Duration `yaml:"timeout"`
	// WatchFile is the loader configuration filename watched for changes.
	WatchFile string `yaml:"watch_file"`
}

// DefaultPath returns the config file location: $DENV_CONFIG if set,
// otherwise denv/denv.yaml under the user config directory.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "denv", "denv.yaml")
}

// Load reads the config file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Loader:    DefaultLoader,
		Timeout:   Duration(DefaultTimeout),
		WatchFile: DefaultWatchFile,
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // user-chosen config path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "path", path)
	}

	if cfg.Loader == "" {
		cfg.Loader = DefaultLoader
	}
	if cfg.WatchFile == "" {
		cfg.WatchFile = DefaultWatchFile
	}
	return cfg, nil
}
