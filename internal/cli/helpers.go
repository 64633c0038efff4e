// Package cli implements the mlcat commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/glorpus-work/mlcat/internal/logger"
	"github.com/glorpus-work/mlcat/pkg/auth"
	"github.com/glorpus-work/mlcat/pkg/client"
	"github.com/glorpus-work/mlcat/pkg/config"
)

// These variables will be set by the main package.
var (
	ConfigPath   *string
	Verbose      *bool
	NoColor      *bool
	OutputFormat *string
	Profile      *string
)

// loadConfig loads the configuration, applies flag overrides, and initializes
// the logger. Every command goes through here first.
func loadConfig() (*config.Config, error) {
	path := getConfigPath()
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Flags win over config file settings.
	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
	}
	if Profile != nil && *Profile != "" {
		cfg.Settings.Profile = *Profile
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}

	logger.InitLogger(cfg.Settings.LogLevel, NoColor != nil && *NoColor)
	return cfg, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}

// newClient builds the API client for the active profile. Without a profile the
// client talks to the default API root unauthenticated.
func newClient(cfg *config.Config) (*client.Client, error) {
	apiURL := config.DefaultAPIURL
	var authenticator auth.Authenticator
	if profile := cfg.GetProfile(""); profile != nil {
		if profile.APIURL != "" {
			apiURL = profile.APIURL
		}
		if profile.APIKey != "" {
			authenticator = profile.ToAuthenticator()
		}
	}
	apiClient, err := client.New(apiURL, authenticator, cfg.Settings.HTTPTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return apiClient, nil
}

func renderJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
