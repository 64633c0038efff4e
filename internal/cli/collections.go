package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/mlcat/pkg/catalog"
)

// NewCollectionsCmd creates the collections command with subcommands.
func NewCollectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "Browse catalog collections",
		Long:  "List and inspect the STAC collections hosted by the catalog",
	}

	cmd.AddCommand(
		newCollectionsListCmd(),
		newCollectionsFetchCmd(),
	)

	return cmd
}

func newCollectionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all collections",
		Long:  "List every collection in the catalog, following pagination",
		RunE:  runCollectionsList,
	}
}

func newCollectionsFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch COLLECTION_ID",
		Short: "Fetch a single collection",
		Long:  "Fetch one collection record and its archive size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollectionsFetch(cmd, args[0])
		},
	}
}

func runCollectionsList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	api, err := newClient(cfg)
	if err != nil {
		return err
	}

	collections, err := catalog.ListCollections(cmd.Context(), api)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	if cfg.Settings.OutputFormat == "json" {
		records := make([]interface{}, len(collections))
		for i, collection := range collections {
			records[i] = collection.Record
		}
		return renderJSON(records)
	}

	if len(collections) == 0 {
		fmt.Println("No collections found")
		return nil
	}

	tabWriter := tabwriter.NewWriter(os.Stdout, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "ID\tLICENSE\tDESCRIPTION")
	for _, collection := range collections {
		record := collection.Record
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\t%s\n", record.ID, record.License, truncate(record.Description, MaxDescriptionLength))
	}
	return tabWriter.Flush()
}

func runCollectionsFetch(cmd *cobra.Command, collectionID string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	api, err := newClient(cfg)
	if err != nil {
		return err
	}

	collection, err := catalog.FetchCollection(cmd.Context(), api, collectionID)
	if err != nil {
		return fmt.Errorf("failed to fetch collection %s: %w", collectionID, err)
	}

	size, err := collection.ArchiveSize(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to resolve archive size for %s: %w", collectionID, err)
	}

	if cfg.Settings.OutputFormat == "json" {
		return renderJSON(map[string]interface{}{
			"collection":   collection.Record,
			"archive_size": size,
		})
	}

	record := collection.Record
	fmt.Printf("ID:           %s\n", record.ID)
	fmt.Printf("STAC version: %s\n", record.StacVersion)
	if record.Title != "" {
		fmt.Printf("Title:        %s\n", record.Title)
	}
	fmt.Printf("License:      %s\n", record.License)
	fmt.Printf("Description:  %s\n", record.Description)
	if len(record.Keywords) > 0 {
		fmt.Printf("Keywords:     %s\n", strings.Join(record.Keywords, ", "))
	}
	if size == nil {
		fmt.Println("Archive:      not available")
	} else {
		fmt.Printf("Archive:      %d bytes\n", *size)
	}
	return nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
