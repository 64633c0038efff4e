package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/mlcat/internal/logger"
	"github.com/glorpus-work/mlcat/pkg/config"
	"github.com/glorpus-work/mlcat/pkg/errors"
)

// NewConfigCmd creates the config command with subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  "View and modify mlcat configuration settings",
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigInitCmd(),
		newConfigProfileCmd(),
	)

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current configuration settings and profiles",
		RunE:  runConfigShow,
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file",
		Long:  "Create a default configuration file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInit(force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration file")

	return cmd
}

func newConfigProfileCmd() *cobra.Command {
	var apiKey, apiURL string

	cmd := &cobra.Command{
		Use:   "set-profile NAME",
		Short: "Add or update an API profile",
		Long:  "Store an API key (and optionally an API root URL) under a profile name",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runConfigSetProfile(args[0], apiKey, apiURL)
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key for the profile")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "API root URL (default: "+config.DefaultAPIURL+")")
	_ = cmd.MarkFlagRequired("api-key")

	return cmd
}

func runConfigShow(*cobra.Command, []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tabWriter := tabwriter.NewWriter(os.Stdout, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "SETTING\tVALUE")
	_, _ = fmt.Fprintln(tabWriter, "-------\t-----")
	_, _ = fmt.Fprintf(tabWriter, "output_dir\t%s\n", cfg.Settings.OutputDir)
	_, _ = fmt.Fprintf(tabWriter, "http_timeout\t%s\n", cfg.Settings.HTTPTimeout)
	_, _ = fmt.Fprintf(tabWriter, "max_concurrent_downloads\t%d\n", cfg.Settings.MaxConcurrent)
	_, _ = fmt.Fprintf(tabWriter, "profile\t%s\n", cfg.Settings.Profile)
	_, _ = fmt.Fprintf(tabWriter, "output_format\t%s\n", cfg.Settings.OutputFormat)
	_, _ = fmt.Fprintf(tabWriter, "log_level\t%s\n", cfg.Settings.LogLevel)
	_ = tabWriter.Flush()

	fmt.Printf("\nProfiles (%d):\n", len(cfg.Profiles))
	for _, profile := range cfg.Profiles {
		apiURL := profile.APIURL
		if apiURL == "" {
			apiURL = config.DefaultAPIURL
		}
		fmt.Printf("  %s: %s (key %s)\n", profile.Name, apiURL, maskKey(profile.APIKey))
	}

	return nil
}

func runConfigInit(force bool) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists at %s (use --force to overwrite): %w", configPath, errors.ErrConfigFileExists)
	}

	defaultConfig := config.DefaultConfig()
	if err := defaultConfig.SaveConfig(configPath); err != nil {
		return fmt.Errorf("failed to save default configuration: %w", err)
	}

	logger.Success("Configuration file created", logger.Fields{"path": configPath})
	return nil
}

func runConfigSetProfile(name, apiKey, apiURL string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	profile := cfg.GetProfile(name)
	if profile == nil {
		profile = &config.ProfileConfig{Name: name}
		cfg.Profiles = append(cfg.Profiles, profile)
	}
	profile.APIKey = apiKey
	profile.APIURL = apiURL

	configPath := getConfigPath()
	if err := cfg.SaveConfig(configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	logger.Success("Profile saved", logger.Fields{"profile": name, "path": configPath})
	return nil
}

func maskKey(key string) string {
	const visible = 4
	if len(key) <= visible {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-visible) + key[len(key)-visible:]
}
