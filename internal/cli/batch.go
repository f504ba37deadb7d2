package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lexis/internal/adapter/fs"
	"lexis/internal/usecase"
)

var (
	batchWord       string
	batchOut        string
	batchWorkers    int
	batchNoProgress bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Analyze every document in a directory",
	Long: `Analyze each text file under a directory independently, several at a
time, and print a summary table. Files are matched by the batch include and
exclude patterns of the config. Identical files are analyzed once.

Examples:
  lexis batch ./corpus
  lexis batch ./corpus --word river --out corpus.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVarP(&batchWord, "word", "w", "", "word to report on in every document")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "also write all reports to a .json or .yaml file")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "j", 0, "concurrent analyses (default from config)")
	batchCmd.Flags().BoolVar(&batchNoProgress, "no-progress", false, "do not draw a progress bar")
}

func runBatch(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()
	workers := cfg.Batch.Workers
	if batchWorkers > 0 {
		workers = batchWorkers
	}

	analyzer, _, err := newCachedAnalyzer()
	if err != nil {
		return err
	}

	walker := fs.NewWalker(cfg.Batch.Includes, cfg.Batch.Excludes)
	batchUC := usecase.NewBatchUseCase(analyzer, walker, fs.NewTextReader(), workers, GetLogger())

	var progress usecase.ProgressFunc
	if !batchNoProgress {
		progress = newProgress(cmd.ErrOrStderr(), "Analyzing")
	}

	result, err := batchUC.Run(cmd.Context(), path, batchWord, progress)
	if err != nil {
		return fmt.Errorf("batch analysis failed: %w", err)
	}

	if batchOut != "" {
		if err := export(batchOut, result); err != nil {
			return err
		}
	}

	if len(result.Items) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No documents found in %s\n", path)
		return nil
	}
	return render(cmd.OutOrStdout(), result, func(w io.Writer) { printBatch(w, result) })
}
