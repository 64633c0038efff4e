package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/mlcat/pkg/catalog"
)

// NewDatasetsCmd creates the datasets command with subcommands.
func NewDatasetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Browse catalog datasets",
		Long:  "List and inspect the datasets hosted by the catalog",
	}

	cmd.AddCommand(
		newDatasetsListCmd(),
		newDatasetsFetchCmd(),
	)

	return cmd
}

func newDatasetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all datasets",
		RunE:  runDatasetsList,
	}
}

func newDatasetsFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch DATASET_ID",
		Short: "Fetch a single dataset",
		Long:  "Fetch one dataset record with its member collections and total archive size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatasetsFetch(cmd, args[0])
		},
	}
}

func runDatasetsList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	api, err := newClient(cfg)
	if err != nil {
		return err
	}

	datasets, err := catalog.ListDatasets(cmd.Context(), api)
	if err != nil {
		return fmt.Errorf("failed to list datasets: %w", err)
	}

	if cfg.Settings.OutputFormat == "json" {
		type row struct {
			ID          string               `json:"id"`
			Title       string               `json:"title,omitempty"`
			Collections []catalog.Descriptor `json:"collections"`
		}
		rows := make([]row, len(datasets))
		for i, dataset := range datasets {
			rows[i] = row{ID: dataset.ID, Title: dataset.Title, Collections: dataset.Descriptors()}
		}
		return renderJSON(rows)
	}

	if len(datasets) == 0 {
		fmt.Println("No datasets found")
		return nil
	}

	tabWriter := tabwriter.NewWriter(os.Stdout, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "ID\tCOLLECTIONS\tTITLE")
	for _, dataset := range datasets {
		_, _ = fmt.Fprintf(tabWriter, "%s\t%d\t%s\n", dataset.ID, len(dataset.Descriptors()), truncate(dataset.Title, MaxDescriptionLength))
	}
	return tabWriter.Flush()
}

func runDatasetsFetch(cmd *cobra.Command, datasetID string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	api, err := newClient(cfg)
	if err != nil {
		return err
	}

	dataset, err := catalog.FetchDataset(cmd.Context(), api, datasetID)
	if err != nil {
		return fmt.Errorf("failed to fetch dataset %s: %w", datasetID, err)
	}

	total, err := dataset.TotalArchiveSize(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to resolve archive sizes for %s: %w", datasetID, err)
	}

	if cfg.Settings.OutputFormat == "json" {
		return renderJSON(map[string]interface{}{
			"id":                 dataset.ID,
			"title":              dataset.Title,
			"collections":        dataset.Descriptors(),
			"total_archive_size": total,
		})
	}

	fmt.Printf("ID:    %s\n", dataset.ID)
	if dataset.Title != "" {
		fmt.Printf("Title: %s\n", dataset.Title)
	}
	if total == nil {
		fmt.Println("Total archive size: not available")
	} else {
		fmt.Printf("Total archive size: %d bytes\n", *total)
	}

	fmt.Printf("\nCollections (%d):\n", len(dataset.Descriptors()))
	for _, descriptor := range dataset.Descriptors() {
		fmt.Printf("  %s", descriptor.ID)
		for _, collectionType := range descriptor.Types {
			fmt.Printf(" [%s]", collectionType)
		}
		fmt.Println()
	}
	return nil
}
