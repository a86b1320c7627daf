package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rbaumann/culpa/internal/model"
)

// Adapter supplies parsed sentences to the pipeline. Parsing itself is an
// external collaborator's job; the pipeline only consumes the normalized
// structure. RuleParser is the built-in reference implementation.
type Adapter interface {
	Parse(ctx context.Context, text string, lang string) ([]model.Sentence, error)
}

// ExternalToken mirrors the wire shape an upstream parser delivers per
// token: lemma, part-of-speech, dependency role and a contiguous character
// span within the sentence.
type ExternalToken struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`
	Dep   string `json:"dep"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// ExternalSentence is one sentence of upstream parser output.
type ExternalSentence struct {
	Text   string          `json:"text"`
	Tokens []ExternalToken `json:"tokens"`
}

// Normalize converts upstream parser output into the pipeline's sentence
// representation, assigning ordinals in input order. A malformed sentence
// becomes a degenerate Sentence carrying the adapter error; it never
// aborts the document.
func Normalize(ext []ExternalSentence) []model.Sentence {
	sentences := make([]model.Sentence, 0, len(ext))
	for i, es := range ext {
		sent := model.Sentence{
			Ordinal: i,
			Text:    strings.TrimSpace(es.Text),
		}
		if err := validateSentence(i, es); err != nil {
			sent.Degenerate = true
			sent.ParseError = err.Error()
			sentences = append(sentences, sent)
			continue
		}
		tokens := make([]model.Token, len(es.Tokens))
		for j, et := range es.Tokens {
			lemma := et.Lemma
			if lemma == "" {
				lemma = strings.ToLower(et.Text)
			}
			tokens[j] = model.Token{
				Text:  et.Text,
				Lemma: lemma,
				POS:   et.POS,
				Dep:   et.Dep,
				Start: et.Start,
				End:   et.End,
			}
		}
		sent.Tokens = tokens
		sentences = append(sentences, sent)
	}
	return sentences
}

func validateSentence(ordinal int, es ExternalSentence) error {
	if strings.TrimSpace(es.Text) == "" {
		return &model.ParseAdapterError{Ordinal: ordinal, Reason: "empty sentence text"}
	}
	if len(es.Tokens) == 0 {
		return &model.ParseAdapterError{Ordinal: ordinal, Reason: "no tokens"}
	}
	prevEnd := 0
	for j, t := range es.Tokens {
		if t.Text == "" {
			return &model.ParseAdapterError{Ordinal: ordinal, Reason: fmt.Sprintf("token %d has empty text", j)}
		}
		if t.Start < 0 || t.End < t.Start {
			return &model.ParseAdapterError{Ordinal: ordinal, Reason: fmt.Sprintf("token %d has invalid span [%d,%d)", j, t.Start, t.End)}
		}
		if t.Start < prevEnd {
			return &model.ParseAdapterError{Ordinal: ordinal, Reason: fmt.Sprintf("token %d overlaps previous token", j)}
		}
		prevEnd = t.End
	}
	return nil
}

// ReadExternal decodes upstream parser output (a JSON array of sentences)
// and normalizes it.
func ReadExternal(r io.Reader) ([]model.Sentence, error) {
	var ext []ExternalSentence
	if err := json.NewDecoder(r).Decode(&ext); err != nil {
		return nil, fmt.Errorf("decode parser output: %w", err)
	}
	return Normalize(ext), nil
}
