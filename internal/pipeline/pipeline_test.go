package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rbaumann/culpa/internal/model"
)

func testPipeline(t *testing.T, cfg *model.Config) *Pipeline {
	t.Helper()
	if cfg == nil {
		cfg = model.DefaultConfig()
		cfg.Enrich.Enabled = false
	}
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return p
}

func TestAnalyzeEndToEnd(t *testing.T) {
	p := testPipeline(t, nil)

	report, err := p.Analyze(context.Background(),
		"The COVID-19 pandemic has materially adversely affected our business operations.", "test")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(report.Sentences) != 1 {
		t.Fatalf("got %d sentences, want 1", len(report.Sentences))
	}
	if len(report.Enrichment) != 0 {
		t.Errorf("enrichment disabled but got %d records", len(report.Enrichment))
	}

	var rec *model.ResponsibilityRecord
	for i := range report.Responsibility {
		if report.Responsibility[i].Entity == "covid-19 pandemic" {
			rec = &report.Responsibility[i]
		}
	}
	if rec == nil {
		t.Fatalf("entity covid-19 pandemic missing; records: %+v", report.Responsibility)
	}

	// The sentence carries only cold signal: negligence dominates and the
	// assessment lands in a risky tier.
	if rec.Negligence <= rec.Intention {
		t.Errorf("negligence %g should exceed intention %g", rec.Negligence, rec.Intention)
	}
	switch rec.Tier {
	case model.TierModerate, model.TierHigh, model.TierVeryHigh:
	default:
		t.Errorf("tier = %q, want Moderate risk or worse", rec.Tier)
	}

	sent := report.Sentences[0]
	if len(sent.Subjects) == 0 || sent.Subjects[0].Text != "COVID-19 pandemic" {
		t.Errorf("subjects = %+v, want the determiner stripped", sent.Subjects)
	}
	if len(sent.Phenomena) == 0 {
		t.Error("expected a phenomenon span for the predicate")
	}
	if !sent.Vectors.InRange() {
		t.Errorf("sentence vectors out of range: %+v", sent.Vectors)
	}
}

func TestAnalyzeNothingToAnalyze(t *testing.T) {
	p := testPipeline(t, nil)
	_, err := p.Analyze(context.Background(), "   ", "empty")
	if !errors.Is(err, model.ErrNothingToAnalyze) {
		t.Fatalf("err = %v, want ErrNothingToAnalyze", err)
	}
}

func TestAnalyzeSentencesAllDegenerate(t *testing.T) {
	p := testPipeline(t, nil)
	sentences := []model.Sentence{
		{Ordinal: 0, Degenerate: true, ParseError: "no tokens"},
		{Ordinal: 1, Degenerate: true, ParseError: "empty sentence text"},
	}
	_, err := p.AnalyzeSentences(context.Background(), sentences, "broken")
	if !errors.Is(err, model.ErrNothingToAnalyze) {
		t.Fatalf("err = %v, want ErrNothingToAnalyze", err)
	}
}

func TestAnalyzeSentencesToleratesDegenerate(t *testing.T) {
	p := testPipeline(t, nil)
	sentences := []model.Sentence{
		{Ordinal: 0, Degenerate: true, ParseError: "no tokens"},
		{
			Ordinal: 1,
			Text:    "Revenue declined.",
			Tokens: []model.Token{
				{Text: "Revenue", Lemma: "revenue", POS: model.POSNoun, Dep: model.DepSubject, Start: 0, End: 7},
				{Text: "declined", Lemma: "decline", POS: model.POSVerb, Dep: model.DepRoot, Start: 8, End: 16},
				{Text: ".", Lemma: ".", POS: model.POSPunct, Start: 16, End: 17},
			},
		},
	}
	report, err := p.AnalyzeSentences(context.Background(), sentences, "mixed")
	if err != nil {
		t.Fatalf("AnalyzeSentences: %v", err)
	}
	if report.Degenerate != 1 {
		t.Errorf("degenerate count = %d, want 1", report.Degenerate)
	}
	if len(report.Entities) != 1 || report.Entities[0].Name != "revenue" {
		t.Errorf("entities = %+v, want [revenue]", report.Entities)
	}
	// The degenerate sentence stays in the report with empty annotations.
	if len(report.Sentences) != 2 {
		t.Errorf("got %d sentences, want 2", len(report.Sentences))
	}
	if !report.Sentences[0].Vectors.Warm.IsZero() || !report.Sentences[0].Vectors.Cold.IsZero() {
		t.Error("degenerate sentence must keep the zero vector")
	}
}

func TestAnalyzeMultiSentenceAggregation(t *testing.T) {
	p := testPipeline(t, nil)
	text := "The pandemic disrupted operations. The pandemic increased risk. Revenue declined."
	report, err := p.Analyze(context.Background(), text, "multi")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(report.Sentences) != 3 {
		t.Fatalf("got %d sentences, want 3", len(report.Sentences))
	}

	var pandemic *model.Entity
	for i := range report.Entities {
		if report.Entities[i].Name == "pandemic" {
			pandemic = &report.Entities[i]
		}
	}
	if pandemic == nil {
		t.Fatalf("pandemic entity missing: %+v", report.Entities)
	}
	if got := pandemic.MentionCount(); got != 2 {
		t.Errorf("pandemic mentions = %d, want 2", got)
	}
	if len(report.Responsibility) != len(report.Entities) {
		t.Errorf("%d responsibility records for %d entities",
			len(report.Responsibility), len(report.Entities))
	}
	for _, sent := range report.Sentences {
		if !sent.Vectors.InRange() {
			t.Errorf("sentence %d vectors out of range: %+v", sent.Ordinal, sent.Vectors)
		}
	}
}

func TestAnalyzeEnrichmentFailureDoesNotAbort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := model.DefaultConfig()
	cfg.Enrich.BaseURL = server.URL + "/api/rest_v1/page/summary"
	cfg.Enrich.RespectRobots = false
	cfg.Enrich.RatePerSecond = 100

	p := testPipeline(t, cfg)
	report, err := p.Analyze(context.Background(), "The pandemic disrupted operations.", "degraded")
	if err != nil {
		t.Fatalf("Analyze must survive enrichment failure: %v", err)
	}
	if len(report.Enrichment) == 0 {
		t.Fatal("expected enrichment records even when every lookup fails")
	}
	for _, rec := range report.Enrichment {
		if rec.Status != model.EnrichFailed {
			t.Errorf("%s: status = %q, want failed", rec.Concept, rec.Status)
		}
	}
	if len(report.Responsibility) == 0 {
		t.Error("scoring must be unaffected by enrichment failures")
	}
}

func TestAnalyzeEnrichmentResolved(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"extract":"An encyclopedia summary.","content_urls":{"desktop":{"page":"https://example.org/wiki/x"}}}`)
	}))
	defer server.Close()

	cfg := model.DefaultConfig()
	cfg.Enrich.BaseURL = server.URL + "/api/rest_v1/page/summary"
	cfg.Enrich.RespectRobots = false
	cfg.Enrich.RatePerSecond = 100
	cfg.Enrich.MaxConcepts = 3

	p := testPipeline(t, cfg)
	report, err := p.Analyze(context.Background(), "The pandemic disrupted operations.", "enriched")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(report.Enrichment) == 0 || len(report.Enrichment) > 3 {
		t.Fatalf("got %d enrichment records, want 1..3", len(report.Enrichment))
	}
	for _, rec := range report.Enrichment {
		if rec.Status != model.EnrichResolved {
			t.Errorf("%s: status = %q, want resolved", rec.Concept, rec.Status)
		}
		if rec.Summary == "" {
			t.Errorf("%s: empty summary", rec.Concept)
		}
	}
}

func TestAnalyzeCancelledContext(t *testing.T) {
	p := testPipeline(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Analyze(ctx, "The pandemic disrupted operations.", "cancelled")
	if err == nil {
		t.Fatal("expected error for cancelled context, got full report")
	}
}

func TestAnalyzeFileParsedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parsed.json")
	input := `[{"text":"Revenue declined.","tokens":[
		{"text":"Revenue","lemma":"revenue","pos":"NOUN","dep":"nsubj","start":0,"end":7},
		{"text":"declined","lemma":"decline","pos":"VERB","dep":"root","start":8,"end":16}]}]`
	if err := os.WriteFile(path, []byte(input), 0644); err != nil {
		t.Fatal(err)
	}

	p := testPipeline(t, nil)
	report, err := p.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if len(report.Entities) != 1 || report.Entities[0].Name != "revenue" {
		t.Errorf("entities = %+v, want [revenue]", report.Entities)
	}
}

func TestAnalyzeFileHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filing.html")
	html := `<html><body><script>x()</script><p>The pandemic disrupted operations.</p></body></html>`
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		t.Fatal(err)
	}

	p := testPipeline(t, nil)
	report, err := p.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if report.Tag != "filing.html" {
		t.Errorf("tag = %q, want filing.html", report.Tag)
	}
	if len(report.Sentences) != 1 {
		t.Errorf("got %d sentences, want 1", len(report.Sentences))
	}
}
