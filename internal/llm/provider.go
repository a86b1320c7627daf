package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rbaumann/culpa/internal/model"
)

// Provider generates an executive summary of a responsibility report.
// Summaries are produced after scoring and never feed back into it.
type Provider interface {
	Name() string
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest is the input for summary generation.
type SummarizeRequest struct {
	Report    model.Report
	Prompt    string // optional custom prompt
	Model     string
	MaxTokens int
}

// SummarizeResponse is the provider's output.
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	Provider  string // "openai", "ollama", "" (disabled)
	Model     string
	APIKey    string
	BaseURL   string // custom endpoint, e.g. a local Ollama server
	Timeout   int    // seconds
	MaxTokens int

	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults with the summarizer disabled.
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// ConfigFromModel converts the pipeline config into provider config.
func ConfigFromModel(mc model.LLMConfig, hc model.HTTPConfig) Config {
	return Config{
		Provider:   mc.Provider,
		Model:      mc.Model,
		APIKey:     mc.APIKey,
		BaseURL:    mc.BaseURL,
		Timeout:    mc.Timeout,
		MaxTokens:  mc.MaxTokens,
		HTTPProxy:  hc.HTTPProxy,
		HTTPSProxy: hc.HTTPSProxy,
		NoProxy:    hc.NoProxy,
	}
}

// BuildPrompt constructs the default summarization prompt from a report.
// The model is asked to describe the computed assessments, not to re-score
// or second-guess them.
func BuildPrompt(report model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are summarizing a responsibility risk report derived from text analysis.

RULES:
1. Describe only the assessments below; do not invent entities or scores.
2. Do not re-classify risk tiers; report them as given.
3. If an entity's ratio is undefined, say the text carried insufficient negative signal.

Report:
- Sentences analyzed: %d
- Entities: %d

Entity assessments:
`, len(report.Sentences), len(report.Entities))

	for _, rec := range report.Responsibility {
		if rec.Ratio != nil {
			fmt.Fprintf(&b, "- %s: ratio %.2f, tier %q, %d mentions (I=%.2f, N=%.2f)\n",
				rec.Entity, *rec.Ratio, rec.Tier, rec.Mentions, rec.Intention, rec.Negligence)
		} else {
			fmt.Fprintf(&b, "- %s: ratio undefined, tier %q, %d mentions (I=%.2f, N=0)\n",
				rec.Entity, rec.Tier, rec.Mentions, rec.Intention)
		}
	}

	b.WriteString("\nWrite a short executive summary (3-6 sentences) in Markdown.\n")
	return b.String()
}
