package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/glorpus-work/mlcat/internal/logger"
	"github.com/glorpus-work/mlcat/pkg/archive"
	"github.com/glorpus-work/mlcat/pkg/catalog"
	"github.com/glorpus-work/mlcat/pkg/download"
	"github.com/glorpus-work/mlcat/pkg/hooks"
)

// hooksDirName is the directory inside the output dir scanned for hook scripts.
const hooksDirName = ".mlcat/hooks"

type downloadFlags struct {
	output      string
	mode        string
	concurrency int
	extract     bool
	noProgress  bool
}

// NewDownloadCmd creates the download command.
func NewDownloadCmd() *cobra.Command {
	var flags downloadFlags

	cmd := &cobra.Command{
		Use:   "download DATASET_ID",
		Short: "Download a dataset's collection archives",
		Long: `Download the archive of every collection composing a dataset.

Existing local files are resumed by default. Use --mode to skip or overwrite
them instead. Hook scripts found in <output>/.mlcat/hooks run around the
transfer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "d", "", "destination directory (default: configured output dir or working directory)")
	cmd.Flags().StringVar(&flags.mode, "mode", "resume", "transfer mode for existing files (resume, skip, overwrite)")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 0, "parallel archive transfers (default: configured max concurrent downloads)")
	cmd.Flags().BoolVar(&flags.extract, "extract", false, "extract each archive after download")
	cmd.Flags().BoolVar(&flags.noProgress, "no-progress", false, "disable progress bars")

	return cmd
}

func runDownload(cmd *cobra.Command, datasetID string, flags downloadFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	api, err := newClient(cfg)
	if err != nil {
		return err
	}

	mode, err := download.ParseMode(flags.mode)
	if err != nil {
		return err
	}

	dir := flags.output
	if dir == "" {
		dir = cfg.Settings.OutputDir
	}
	if dir == "" {
		dir = "."
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output directory: %w", err)
	}

	concurrency := flags.concurrency
	if concurrency <= 0 {
		concurrency = cfg.Settings.MaxConcurrent
	}

	ctx := cmd.Context()

	dataset, err := catalog.FetchDataset(ctx, api, datasetID)
	if err != nil {
		return fmt.Errorf("failed to fetch dataset %s: %w", datasetID, err)
	}

	hookManager := hooks.NewManager()
	if err := hooks.LoadFromDir(hookManager, filepath.Join(dir, hooksDirName)); err != nil {
		return err
	}

	if err := hookManager.Execute(hooks.PreDownload, hooks.Context{
		DatasetID: dataset.ID,
		DestDir:   dir,
	}); err != nil {
		return err
	}

	opts := catalog.DownloadOptions{
		Dir:         dir,
		Mode:        mode,
		Concurrency: concurrency,
	}

	var progress *mpb.Progress
	if !flags.noProgress {
		progress = mpb.New(mpb.WithWidth(ProgressBarWidth))
		opts.OnProgress = newProgressFunc(progress)
	}

	logger.Debug("Downloading dataset archives", logger.Fields{
		"dataset": dataset.ID,
		"dir":     dir,
		"mode":    mode.String(),
	})

	paths, err := dataset.Download(ctx, opts)
	if progress != nil {
		if err != nil {
			progress.Shutdown()
		} else {
			progress.Wait()
		}
	}
	if err != nil {
		return fmt.Errorf("failed to download dataset %s: %w", datasetID, err)
	}

	for _, path := range paths {
		if err := hookManager.Execute(hooks.PostDownload, hooks.Context{
			DatasetID:    dataset.ID,
			CollectionID: collectionIDFromPath(path),
			ArchivePath:  path,
			DestDir:      dir,
		}); err != nil {
			return err
		}
	}

	if flags.extract {
		if err := extractArchives(cmd, dataset.ID, dir, paths, hookManager); err != nil {
			return err
		}
	}

	logger.Success("Dataset downloaded", logger.Fields{
		"dataset":  dataset.ID,
		"archives": len(paths),
		"dir":      dir,
	})
	return nil
}

func extractArchives(cmd *cobra.Command, datasetID, dir string, paths []string, hookManager hooks.Manager) error {
	extractor := archive.NewExtractor()
	for _, path := range paths {
		collectionID := collectionIDFromPath(path)
		destDir := filepath.Join(dir, collectionID)

		logger.Debug("Extracting archive", logger.Fields{"archive": path, "dest": destDir})
		if err := extractor.ExtractAll(cmd.Context(), path, destDir); err != nil {
			return fmt.Errorf("failed to extract %s: %w", path, err)
		}

		if err := hookManager.Execute(hooks.PostExtract, hooks.Context{
			DatasetID:    datasetID,
			CollectionID: collectionID,
			ArchivePath:  path,
			DestDir:      destDir,
		}); err != nil {
			return err
		}
	}
	return nil
}

// newProgressFunc returns a progress callback that maintains one bar per
// collection. Bars are created on the first report, when the total is known.
func newProgressFunc(progress *mpb.Progress) func(collectionID string, written, total int64) {
	var mu sync.Mutex
	bars := make(map[string]*mpb.Bar)

	return func(collectionID string, written, total int64) {
		mu.Lock()
		bar, ok := bars[collectionID]
		if !ok {
			bar = progress.New(total,
				mpb.BarStyle().Rbound("|"),
				mpb.PrependDecorators(
					decor.Name(collectionID+" "),
					decor.Counters(decor.SizeB1024(0), "% .2f / % .2f"),
				),
				mpb.AppendDecorators(decor.Percentage()),
			)
			bars[collectionID] = bar
		}
		mu.Unlock()
		bar.SetCurrent(written)
	}
}

func collectionIDFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), download.DefaultArchiveExt)
}
