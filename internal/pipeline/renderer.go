package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rbaumann/culpa/internal/model"
)

// Renderer writes reports as JSON or Markdown and prints the stdout
// summary. Rendering consumes only the Report contract.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report to path.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report to path.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Responsibility Report\n\n")
	fmt.Fprintf(&b, "Analyzed: %s  \n", report.AnalyzedAt.Format("2006-01-02 15:04:05 UTC"))
	if report.Tag != "" {
		fmt.Fprintf(&b, "Input: %s  \n", report.Tag)
	}
	fmt.Fprintf(&b, "Sentences: %d", len(report.Sentences))
	if report.Degenerate > 0 {
		fmt.Fprintf(&b, " (%d degenerate)", report.Degenerate)
	}
	fmt.Fprintf(&b, "  \nEntities: %d\n\n", len(report.Entities))

	b.WriteString("## Responsibility Ratios\n\n")
	b.WriteString("| Entity | Mentions | Intention | Negligence | Ratio | Risk Tier |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, rec := range report.Responsibility {
		ratio := "—"
		if rec.Ratio != nil {
			ratio = fmt.Sprintf("%.3f", *rec.Ratio)
		}
		fmt.Fprintf(&b, "| %s | %d | %.3f | %.3f | %s | %s |\n",
			rec.Entity, rec.Mentions, rec.Intention, rec.Negligence, ratio, rec.Tier)
	}

	if len(report.Enrichment) > 0 {
		b.WriteString("\n## Enrichment\n\n")
		for _, rec := range report.Enrichment {
			switch rec.Status {
			case model.EnrichResolved:
				fmt.Fprintf(&b, "- **%s** — [%s](%s): %s\n", rec.Concept, rec.Status, rec.URL, firstSentence(rec.Summary))
			default:
				fmt.Fprintf(&b, "- **%s** — %s\n", rec.Concept, rec.Status)
			}
		}
	}

	if report.LLM != nil && report.LLM.Enabled {
		b.WriteString("\n## Summary\n\n")
		b.WriteString(report.LLM.SummaryMD)
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("\n---\n*Generated by culpa. Ratios describe textual signal, not legal responsibility.*\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a terse overview to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("Sentences: %d  Entities: %d\n", len(report.Sentences), len(report.Entities))
	for i, rec := range report.Responsibility {
		if i >= 10 {
			fmt.Printf("  … and %d more\n", len(report.Responsibility)-10)
			break
		}
		if rec.Ratio != nil {
			fmt.Printf("%2d. %-30s R=%6.2f  %s  [%d mentions]\n",
				i+1, rec.Entity, *rec.Ratio, rec.Tier, rec.Mentions)
		} else {
			fmt.Printf("%2d. %-30s R=  n/a  %s  [%d mentions]\n",
				i+1, rec.Entity, rec.Tier, rec.Mentions)
		}
	}
}

func firstSentence(text string) string {
	if idx := strings.Index(text, ". "); idx > 0 {
		return text[:idx+1]
	}
	return text
}
