package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rbaumann/culpa/internal/model"
	"github.com/rbaumann/culpa/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON      string
	outMD        string
	timeout      time.Duration
	noEnrich     bool
	noFooter     bool
	enrichLimit  int
	primeFile    string
	polarityFile string
	httpProxy    string
	httpsProxy   string
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|->",
	Short: "Analyze a document and generate a responsibility report",
	Long: `Analyze runs a document through the scoring pipeline:
- Extract subjects and event phenomena per sentence
- Tag spans against the semantic prime vocabulary
- Compute warm/cold sentiment vectors
- Aggregate by entity and classify Responsibility Ratios
- Optionally enrich distinct concepts with encyclopedia summaries

Input is a plain-text or HTML file, a .json file of upstream parser
output, or "-" for stdin.

Example:
  culpa analyze disclosure.txt
  culpa analyze filing.html --json report.json --md report.md
  culpa analyze disclosure.txt --no-enrich
  culpa analyze disclosure.txt --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&noEnrich, "no-enrich", false, "disable external concept enrichment")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	analyzeCmd.Flags().IntVar(&enrichLimit, "enrich-limit", 20, "max distinct concepts to enrich")
	analyzeCmd.Flags().StringVar(&primeFile, "primes", "", "YAML override for the semantic prime vocabulary")
	analyzeCmd.Flags().StringVar(&polarityFile, "polarity", "", "YAML override for the lexical polarity table")
	analyzeCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	analyzeCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// buildConfig assembles the pipeline configuration from flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Enrich.Enabled = !noEnrich
	cfg.Enrich.MaxConcepts = enrichLimit
	cfg.Vocab.PrimeFile = primeFile
	cfg.Vocab.PolarityFile = polarityFile
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}
	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	var report *model.Report
	if input == "-" {
		text, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		report, err = p.Analyze(ctx, string(text), "stdin")
		if err != nil {
			return analyzeErr(err)
		}
	} else {
		report, err = p.AnalyzeFile(ctx, input)
		if err != nil {
			return analyzeErr(err)
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Analyzed %d sentences (%d degenerate)\n", len(report.Sentences), report.Degenerate)
		fmt.Fprintf(os.Stderr, "✓ Aggregated %d entities\n", len(report.Entities))
		fmt.Fprintf(os.Stderr, "✓ Enriched %d concepts\n", len(report.Enrichment))
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}
	renderer.RenderSummary(report)

	return nil
}

func analyzeErr(err error) error {
	if errors.Is(err, model.ErrNothingToAnalyze) {
		return fmt.Errorf("input contains no analyzable sentences")
	}
	return fmt.Errorf("analyze failed: %w", err)
}
