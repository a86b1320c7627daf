package model

import "time"

// Report is the complete result of one analysis run and the sole contract
// handed to rendering/transport layers. Nothing downstream may depend on
// pipeline internals beyond this shape.
type Report struct {
	AnalyzedAt time.Time `json:"analyzed_at"`
	Lang       string    `json:"lang"`
	Tag        string    `json:"tag,omitempty"`

	// Sentences in original document order, with derived annotations.
	Sentences []Sentence `json:"sentences"`

	// Entities sorted by mention count (descending), then name.
	Entities []Entity `json:"entities"`

	// Responsibility sorted by ratio (descending, undefined last).
	Responsibility []ResponsibilityRecord `json:"responsibility"`

	// Enrichment is present only when enrichment was enabled; one record
	// per distinct concept looked up.
	Enrichment []EnrichmentRecord `json:"enrichment,omitempty"`

	// Degenerate counts sentences discarded for unparseable structure.
	Degenerate int `json:"degenerate_sentences,omitempty"`

	// LLM is an optional post-scoring summary. It never affects scores.
	LLM *LLMSummary `json:"llm,omitempty"`
}

// LLMSummary contains the optional model-generated executive summary,
// generated after scoring and clearly separated from it.
type LLMSummary struct {
	Enabled   bool   `json:"enabled"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	SummaryMD string `json:"summary_md,omitempty"`
}
