package extract

import (
	"strings"

	"github.com/rbaumann/culpa/internal/model"
)

// Extractor identifies subject noun phrases and event phenomena in a
// parsed sentence. It is pure: it reads token structure and returns spans,
// never mutating its input.
type Extractor struct{}

// NewExtractor creates a new subject/phenomenon extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the subject spans and phenomenon spans of one sentence.
// A sentence with unusable structure yields empty sets; that is a valid
// degenerate result, not an error.
func (e *Extractor) Extract(sent *model.Sentence) (subjects []model.Span, phenomena []model.Span) {
	if sent.Degenerate || len(sent.Tokens) == 0 {
		return nil, nil
	}
	subjects = e.extractSubjects(sent.Tokens)
	phenomena = e.extractPhenomena(sent.Tokens)
	return subjects, phenomena
}

// extractSubjects expands each subject head into its full noun phrase and
// suppresses bare determiners: if stripping a leading determiner leaves
// nothing, the candidate is discarded.
func (e *Extractor) extractSubjects(tokens []model.Token) []model.Span {
	var spans []model.Span
	for i, t := range tokens {
		if t.Dep != model.DepSubject && t.Dep != model.DepPassiveSubject {
			continue
		}
		start := i
		for start > 0 && attachesLeft(tokens[start-1].Dep) {
			start--
		}
		span := buildSpan(tokens, start, i+1)
		if span, ok := stripLeadingDeterminer(tokens, span); ok {
			spans = append(spans, span)
		}
	}
	return spans
}

func attachesLeft(dep string) bool {
	switch dep {
	case model.DepDeterminer, "amod", "compound", "nummod":
		return true
	}
	return false
}

// stripLeadingDeterminer drops a leading determiner token from the span.
// Returns false when nothing qualifies as a subject afterwards: a bare
// "The" or "This" never becomes a subject.
func stripLeadingDeterminer(tokens []model.Token, span model.Span) (model.Span, bool) {
	start := span.Start
	if start < span.End && tokens[start].POS == model.POSDeterminer {
		start++
	}
	if start >= span.End {
		return model.Span{}, false
	}
	// A determiner head with no qualifying noun is not a subject either.
	onlyDet := true
	for i := start; i < span.End; i++ {
		if tokens[i].POS != model.POSDeterminer {
			onlyDet = false
			break
		}
	}
	if onlyDet {
		return model.Span{}, false
	}
	return buildSpan(tokens, start, span.End), true
}

// extractPhenomena returns the predicate span governing the sentence: the
// longest contiguous run covering the verb group and everything through
// the last content token (objects, adverbial modifiers). A sentence with
// no finite verb yields no phenomena.
func (e *Extractor) extractPhenomena(tokens []model.Token) []model.Span {
	rootIdx := -1
	for i, t := range tokens {
		if t.Dep == model.DepRoot && (t.POS == model.POSVerb || t.POS == model.POSAux) {
			rootIdx = i
			break
		}
	}
	if rootIdx < 0 {
		return nil
	}

	// Grow left over the verb group: auxiliaries, adverbs, negation.
	start := rootIdx
	for start > 0 {
		switch tokens[start-1].POS {
		case model.POSAux, model.POSAdverb, model.POSParticle:
			start--
		default:
			return []model.Span{predicateSpan(tokens, start, rootIdx)}
		}
	}
	return []model.Span{predicateSpan(tokens, start, rootIdx)}
}

func predicateSpan(tokens []model.Token, start, rootIdx int) model.Span {
	end := rootIdx + 1
	for i := rootIdx + 1; i < len(tokens); i++ {
		if tokens[i].POS != model.POSPunct {
			end = i + 1
		}
	}
	return buildSpan(tokens, start, end)
}

// buildSpan assembles a span's text from token surface forms, skipping
// punctuation tokens.
func buildSpan(tokens []model.Token, start, end int) model.Span {
	var parts []string
	for i := start; i < end; i++ {
		if tokens[i].POS == model.POSPunct {
			continue
		}
		parts = append(parts, tokens[i].Text)
	}
	return model.Span{
		Text:  strings.Join(parts, " "),
		Start: start,
		End:   end,
	}
}
