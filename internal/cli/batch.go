package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rbaumann/culpa/internal/model"
	"github.com/rbaumann/culpa/internal/pipeline"
	"github.com/rbaumann/culpa/internal/worker"
	"github.com/spf13/cobra"
)

var (
	batchListFile    string
	batchOutputDir   string
	batchConcurrency int
	batchTimeout     time.Duration
	batchNoEnrich    bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Analyze multiple documents concurrently",
	Long: `Batch analyzes multiple documents concurrently and writes one JSON
report per input into the output directory. Each document is a fully
independent run: failures are reported per file and never abort the
batch, and nothing is shared between runs.

Inputs come from positional arguments, or from a list file (one path
per line, # comments allowed) via --file.

Example:
  culpa batch a.txt b.txt c.html
  culpa batch --file inputs.txt --concurrency 8 --output-dir reports/`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchListFile, "file", "f", "", "file containing input paths (one per line)")
	batchCmd.Flags().StringVarP(&batchOutputDir, "output-dir", "o", "reports", "directory for per-document JSON reports")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 4, "number of documents analyzed in parallel")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "overall batch timeout")
	batchCmd.Flags().BoolVar(&batchNoEnrich, "no-enrich", false, "disable external concept enrichment")
}

func runBatch(cmd *cobra.Command, args []string) error {
	var paths []string
	if batchListFile != "" {
		p, err := worker.ReadPathsFromFile(batchListFile)
		if err != nil {
			return err
		}
		paths = append(paths, p...)
	}
	paths = append(paths, args...)
	if len(paths) == 0 {
		return fmt.Errorf("no input files: pass paths as arguments or use --file")
	}

	cfg := buildBatchConfig()

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Analyzing %d documents (concurrency: %d)...\n", len(paths), batchConcurrency)
	start := time.Now()

	processor := worker.NewBatchProcessor(p, batchConcurrency)
	results := processor.ProcessPaths(ctx, paths)

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	succeeded, failed := 0, 0
	for _, res := range results {
		if res.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, res.Error)
			continue
		}
		outPath := filepath.Join(batchOutputDir, reportName(res.Path))
		if err := renderer.RenderJSON(res.Report, outPath); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, err)
			continue
		}
		succeeded++
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s → %s\n", res.Path, outPath)
		}
	}

	fmt.Fprintf(os.Stderr, "Done in %s: %d succeeded, %d failed\n",
		time.Since(start).Round(time.Millisecond), succeeded, failed)

	if failed > 0 && succeeded == 0 {
		return fmt.Errorf("all %d documents failed", failed)
	}
	return nil
}

func buildBatchConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Enrich.Enabled = !batchNoEnrich
	cfg.Concurrency.BatchWorkers = batchConcurrency
	cfg.Output.Verbose = verbose
	return cfg
}

// reportName derives the output file name from the input path.
func reportName(inputPath string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".json"
}
