// Package config provides configuration management for the mlcat catalog client.
// It handles loading, validating, and managing application settings and API
// profiles. The package supports YAML configuration files and provides sensible
// defaults while allowing for customization through configuration files.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/glorpus-work/mlcat/pkg/errors"
	"github.com/glorpus-work/mlcat/pkg/fsutil"
)

// Config represents the application configuration.
type Config struct {
	// API profiles (named API key / URL pairs)
	Profiles []*ProfileConfig `yaml:"profiles"`

	// General settings
	Settings Settings `yaml:"settings"`
}

// ProfileConfig represents a single API profile.
type ProfileConfig struct {
	Name   string `yaml:"name"`
	APIKey string `yaml:"api_key"`
	APIURL string `yaml:"api_url,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	// Download settings
	OutputDir string `yaml:"output_dir,omitempty"`

	// Network settings
	HTTPTimeout   time.Duration `yaml:"http_timeout"`
	MaxConcurrent int           `yaml:"max_concurrent_downloads"`

	// Active profile; defaults to "default"
	Profile string `yaml:"profile,omitempty"`

	// Output settings
	OutputFormat string `yaml:"output_format"` // json, table, yaml
	LogLevel     string `yaml:"log_level"`     // panic, fatal, error, warn, info, debug, trace
}

// Default configuration values.
const (
	// DefaultAPIURL is the root URL of the catalog API.
	DefaultAPIURL = "https://api.radiant.earth/mlhub/v1"

	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultMaxConcurrent is the default maximum number of concurrent downloads.
	DefaultMaxConcurrent = 5

	// DefaultProfile is the profile used when none is selected.
	DefaultProfile = "default"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Profiles: []*ProfileConfig{},
		Settings: Settings{
			HTTPTimeout:   DefaultHTTPTimeout,
			MaxConcurrent: DefaultMaxConcurrent,
			Profile:       DefaultProfile,
			OutputFormat:  "table",
			LogLevel:      "info",
		},
	}
}

// GetDefaultConfigPath returns the default config file location.
func GetDefaultConfigPath() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "could not determine user config dir")
	}
	return filepath.Join(userConfigDir, "mlcat", "config.yaml"), nil
}

// LoadConfig loads configuration from a file. A missing file yields the default
// configuration rather than an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// SaveConfig saves configuration to a file.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeSecure)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	// Atomically replace the config file. Keep secure permissions since
	// profiles carry API keys.
	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	profileNames := make(map[string]bool)
	for _, profile := range c.Profiles {
		if profile.Name == "" {
			return fmt.Errorf("profile name cannot be empty: %w", errors.ErrConfigValidation)
		}
		if profileNames[profile.Name] {
			return fmt.Errorf("duplicate profile name %q: %w", profile.Name, errors.ErrConfigValidation)
		}
		profileNames[profile.Name] = true
	}
	if c.Settings.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout cannot be negative: %w", errors.ErrConfigValidation)
	}
	if c.Settings.MaxConcurrent < 0 {
		return fmt.Errorf("max_concurrent_downloads cannot be negative: %w", errors.ErrConfigValidation)
	}
	return nil
}

// GetProfile returns the profile with the given name, or nil if it doesn't exist.
// An empty name selects the configured active profile.
func (c *Config) GetProfile(name string) *ProfileConfig {
	if name == "" {
		name = c.Settings.Profile
	}
	for _, profile := range c.Profiles {
		if profile.Name == name {
			return profile
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Profiles == nil {
		c.Profiles = []*ProfileConfig{}
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = DefaultHTTPTimeout
	}
	if c.Settings.MaxConcurrent == 0 {
		c.Settings.MaxConcurrent = DefaultMaxConcurrent
	}
	if c.Settings.Profile == "" {
		c.Settings.Profile = DefaultProfile
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = "table"
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = "info"
	}
}
