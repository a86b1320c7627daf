package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rbaumann/culpa/internal/enrich"
	"github.com/rbaumann/culpa/internal/extract"
	"github.com/rbaumann/culpa/internal/llm"
	"github.com/rbaumann/culpa/internal/model"
	"github.com/rbaumann/culpa/internal/parse"
	"github.com/rbaumann/culpa/internal/score"
)

// Pipeline orchestrates one analysis flow: adapt → extract → tag → score
// per sentence (parallel), then aggregate → assess (sequential), with
// enrichment fanned out concurrently and merged at the end.
type Pipeline struct {
	adapter    parse.Adapter
	extractor  *extract.Extractor
	tagger     *extract.Tagger
	scorer     *score.VectorScorer
	aggregator *score.Aggregator
	engine     *score.Engine
	summarizer *llm.Summarizer // optional, nil if disabled
	config     *model.Config
}

// NewPipeline builds a pipeline from configuration, loading vocabulary
// overrides once; the resulting tables are shared read-only by all runs.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	vocab := extract.DefaultPrimeVocabulary()
	if cfg.Vocab.PrimeFile != "" {
		v, err := extract.LoadPrimeVocabulary(cfg.Vocab.PrimeFile)
		if err != nil {
			return nil, fmt.Errorf("load prime vocabulary: %w", err)
		}
		vocab = v
	}

	lexicon := score.DefaultPolarityLexicon()
	if cfg.Vocab.PolarityFile != "" {
		l, err := score.LoadPolarityLexicon(cfg.Vocab.PolarityFile)
		if err != nil {
			return nil, fmt.Errorf("load polarity lexicon: %w", err)
		}
		lexicon = l
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		adapter:    parse.NewRuleParser(),
		extractor:  extract.NewExtractor(),
		tagger:     extract.NewTagger(vocab),
		scorer:     score.NewVectorScorer(lexicon),
		aggregator: score.NewAggregator(),
		engine:     score.NewEngine(),
		summarizer: summarizer,
		config:     cfg,
	}, nil
}

// SetAdapter swaps the parsed-sentence adapter; the default is the
// built-in rule parser.
func (p *Pipeline) SetAdapter(a parse.Adapter) {
	p.adapter = a
}

// Analyze runs the full pipeline over raw text.
func (p *Pipeline) Analyze(ctx context.Context, text string, tag string) (*model.Report, error) {
	sentences, err := p.adapter.Parse(ctx, text, p.config.Lang)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return p.AnalyzeSentences(ctx, sentences, tag)
}

// AnalyzeFile loads an input file and analyzes it. Plain text goes through
// the adapter as-is, HTML is stripped to visible text first, and .json is
// treated as upstream parser output (an array of parsed sentences).
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	text := string(data)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, err = parse.TextFromHTML(text)
		if err != nil {
			return nil, fmt.Errorf("extract text from HTML: %w", err)
		}
	case ".json":
		sentences, err := parse.ReadExternal(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return p.AnalyzeSentences(ctx, sentences, filepath.Base(path))
	}
	return p.Analyze(ctx, text, filepath.Base(path))
}

// AnalyzeSentences runs the pipeline over already-adapted sentences, the
// entry point for external parser output. The result is all-or-nothing:
// on cancellation no partial report is returned.
func (p *Pipeline) AnalyzeSentences(ctx context.Context, sentences []model.Sentence, tag string) (*model.Report, error) {
	doc := &model.Document{Lang: p.config.Lang, Sentences: sentences}
	if doc.ValidSentences() == 0 {
		return nil, model.ErrNothingToAnalyze
	}

	if err := p.annotate(ctx, doc.Sentences); err != nil {
		return nil, err
	}

	// Aggregation is a sequential reduction: entity identity merges
	// across sentences.
	entities := p.aggregator.Aggregate(doc.Sentences)

	// Enrichment fans out concurrently with responsibility scoring. A
	// fresh gateway per run keeps the cache run-scoped.
	var (
		enrichment []model.EnrichmentRecord
		enrichWg   sync.WaitGroup
	)
	if p.config.Enrich.Enabled {
		concepts := enrich.CandidateConcepts(entities, doc.Sentences, p.config.Enrich.MaxConcepts)
		gateway := enrich.NewGateway(p.config.Enrich, p.config.HTTP)
		enrichWg.Add(1)
		go func() {
			defer enrichWg.Done()
			enrichment = gateway.EnrichAll(ctx, concepts)
		}()
	}

	records := p.engine.Assess(entities)

	enrichWg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &model.Report{
		AnalyzedAt:     time.Now().UTC(),
		Lang:           doc.Lang,
		Tag:            tag,
		Sentences:      doc.Sentences,
		Entities:       entities,
		Responsibility: records,
		Enrichment:     enrichment,
		Degenerate:     len(doc.Sentences) - doc.ValidSentences(),
	}

	// Optional LLM summary, generated after scoring and never feeding
	// back into it.
	if p.summarizer != nil && p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else if summary != nil {
			report.LLM = summary
		}
	}

	return report, nil
}

// annotate runs the pure per-sentence stages (extraction, tagging,
// scoring) in parallel and re-joins results by ordinal position, which is
// free here because each goroutine writes only its own index.
func (p *Pipeline) annotate(ctx context.Context, sentences []model.Sentence) error {
	workers := p.config.Concurrency.SentenceWorkers
	if workers <= 0 {
		workers = 8
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		rangeErr  error
		semaphore = make(chan struct{}, workers)
	)

	for i := range sentences {
		wg.Add(1)
		go func(sent *model.Sentence) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			if sent.Degenerate {
				return
			}
			sent.Subjects, sent.Phenomena = p.extractor.Extract(sent)
			sent.Primes = p.tagger.TagSentence(sent.Tokens)
			sent.Vectors = p.scorer.Score(sent.Tokens, sent.Primes)

			if err := model.CheckRange(sent.Ordinal, sent.Vectors); err != nil {
				mu.Lock()
				if rangeErr == nil {
					rangeErr = err
				}
				mu.Unlock()
			}
		}(&sentences[i])
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	return rangeErr
}
