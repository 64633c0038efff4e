package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/mlcat/internal/cli"
)

var (
	configPath   string
	verbose      bool
	noColor      bool
	outputFormat string
	profile      string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mlcat",
		Short: "A client for remote geospatial dataset catalogs",
		Long: `mlcat is a client for Radiant-MLHub-style geospatial dataset catalogs:
- Browse: list collections and datasets
- Download: fetch collection archives with resume support
- Library: pkg/catalog and pkg/download for programmatic use`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output-format", "o", "", "output format (json, table)")
	cmd.PersistentFlags().StringVar(&profile, "profile", "", "API profile to use")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.NoColor = &noColor
	cli.OutputFormat = &outputFormat
	cli.Profile = &profile

	// Add subcommands
	cmd.AddCommand(
		cli.NewCollectionsCmd(),
		cli.NewDatasetsCmd(),
		cli.NewDownloadCmd(),
		cli.NewConfigCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
