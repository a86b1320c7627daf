package extract

import (
	"testing"

	"github.com/rbaumann/culpa/internal/model"
)

// tok builds a token with derived lemma; spans are irrelevant here.
func tok(text, pos, dep string) model.Token {
	return model.Token{Text: text, Lemma: text, POS: pos, Dep: dep}
}

func spanTexts(spans []model.Span) []string {
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = s.Text
	}
	return out
}

func TestExtractSubjectStripsDeterminer(t *testing.T) {
	// "The business operations were affected."
	sent := &model.Sentence{
		Text: "The business operations were affected.",
		Tokens: []model.Token{
			tok("The", model.POSDeterminer, model.DepDeterminer),
			tok("business", model.POSNoun, "compound"),
			tok("operations", model.POSNoun, model.DepSubject),
			tok("were", model.POSAux, ""),
			tok("affected", model.POSVerb, model.DepRoot),
			tok(".", model.POSPunct, ""),
		},
	}
	e := NewExtractor()
	subjects, _ := e.Extract(sent)
	got := spanTexts(subjects)
	if len(got) != 1 || got[0] != "business operations" {
		t.Fatalf("subjects = %v, want [business operations]", got)
	}
}

func TestExtractBareDeterminerDiscarded(t *testing.T) {
	// "This was unexpected." with a determiner mislabeled as subject head.
	sent := &model.Sentence{
		Text: "This was unexpected.",
		Tokens: []model.Token{
			tok("This", model.POSDeterminer, model.DepSubject),
			tok("was", model.POSAux, model.DepRoot),
			tok("unexpected", model.POSAdjective, ""),
			tok(".", model.POSPunct, ""),
		},
	}
	e := NewExtractor()
	subjects, _ := e.Extract(sent)
	if len(subjects) != 0 {
		t.Fatalf("subjects = %v, want none for a bare determiner", spanTexts(subjects))
	}
}

func TestExtractPassiveSubject(t *testing.T) {
	sent := &model.Sentence{
		Tokens: []model.Token{
			tok("Operations", model.POSNoun, model.DepPassiveSubject),
			tok("were", model.POSAux, ""),
			tok("disrupted", model.POSVerb, model.DepRoot),
		},
	}
	e := NewExtractor()
	subjects, _ := e.Extract(sent)
	got := spanTexts(subjects)
	if len(got) != 1 || got[0] != "Operations" {
		t.Fatalf("subjects = %v, want [Operations]", got)
	}
}

func TestExtractPhenomenaVerbGroup(t *testing.T) {
	// "The pandemic has materially adversely affected our operations."
	sent := &model.Sentence{
		Tokens: []model.Token{
			tok("The", model.POSDeterminer, model.DepDeterminer),
			tok("pandemic", model.POSNoun, model.DepSubject),
			tok("has", model.POSAux, ""),
			tok("materially", model.POSAdverb, ""),
			tok("adversely", model.POSAdverb, ""),
			tok("affected", model.POSVerb, model.DepRoot),
			tok("our", model.POSDeterminer, ""),
			tok("operations", model.POSNoun, model.DepObject),
			tok(".", model.POSPunct, ""),
		},
	}
	e := NewExtractor()
	_, phenomena := e.Extract(sent)
	got := spanTexts(phenomena)
	want := "has materially adversely affected our operations"
	if len(got) != 1 || got[0] != want {
		t.Fatalf("phenomena = %v, want [%s]", got, want)
	}
}

func TestExtractNoFiniteVerbNoPhenomena(t *testing.T) {
	sent := &model.Sentence{
		Tokens: []model.Token{
			tok("Quarterly", model.POSAdjective, ""),
			tok("revenue", model.POSNoun, ""),
			tok("summary", model.POSNoun, ""),
		},
	}
	e := NewExtractor()
	subjects, phenomena := e.Extract(sent)
	if len(subjects) != 0 || len(phenomena) != 0 {
		t.Fatalf("expected empty extraction, got subjects=%v phenomena=%v",
			spanTexts(subjects), spanTexts(phenomena))
	}
}

func TestExtractDegenerateSentence(t *testing.T) {
	sent := &model.Sentence{Degenerate: true, ParseError: "no tokens"}
	e := NewExtractor()
	subjects, phenomena := e.Extract(sent)
	if subjects != nil || phenomena != nil {
		t.Fatal("degenerate sentence must yield nil annotations")
	}
}
