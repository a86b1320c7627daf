package extract

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rbaumann/culpa/internal/model"
)

func words(texts ...string) []model.Token {
	tokens := make([]model.Token, len(texts))
	for i, w := range texts {
		tokens[i] = model.Token{Text: w, Lemma: w}
	}
	return tokens
}

func TestTagSentenceSingles(t *testing.T) {
	tagger := NewTagger(nil)
	got := tagger.TagSentence(words("results", "were", "not", "good"))
	want := []string{"GOOD", "NOT"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}
}

func TestTagMatchesLemmaWhenSurfaceMisses(t *testing.T) {
	tagger := NewTagger(nil)
	tokens := []model.Token{{Text: "occurred", Lemma: "occur"}}
	got := tagger.TagSentence(tokens)
	if !reflect.DeepEqual(got, []string{"HAPPEN"}) {
		t.Fatalf("tags = %v, want [HAPPEN]", got)
	}
}

func TestTagPhraseConsumesTokens(t *testing.T) {
	tagger := NewTagger(nil)
	// "there is" must fire THERE IS without also firing BE via the lemma
	// of "is".
	tokens := []model.Token{
		{Text: "there", Lemma: "there"},
		{Text: "is", Lemma: "be"},
	}
	got := tagger.TagSentence(tokens)
	if !reflect.DeepEqual(got, []string{"THERE IS"}) {
		t.Fatalf("tags = %v, want [THERE IS]", got)
	}
}

func TestTagDeduplicates(t *testing.T) {
	tagger := NewTagger(nil)
	got := tagger.TagSentence(words("not", "never", "not"))
	if !reflect.DeepEqual(got, []string{"NOT"}) {
		t.Fatalf("tags = %v, want [NOT]", got)
	}
}

func TestTagNoMatchReturnsNil(t *testing.T) {
	tagger := NewTagger(nil)
	if got := tagger.TagSentence(words("quarterly", "revenue")); got != nil {
		t.Fatalf("tags = %v, want nil", got)
	}
}

func TestTagSpan(t *testing.T) {
	tagger := NewTagger(nil)
	tokens := words("not", "good", "bad")

	got := tagger.TagSpan(tokens, model.Span{Start: 0, End: 2})
	want := []string{"GOOD", "NOT"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}

	if got := tagger.TagSpan(tokens, model.Span{Start: 2, End: 1}); got != nil {
		t.Errorf("inverted span should yield nil, got %v", got)
	}
	if got := tagger.TagSpan(tokens, model.Span{Start: 0, End: 99}); got != nil {
		t.Errorf("out-of-bounds span should yield nil, got %v", got)
	}
}

func TestDefaultVocabularySize(t *testing.T) {
	if size := DefaultPrimeVocabulary().Size(); size != 65 {
		t.Errorf("default vocabulary has %d primitives, want 65", size)
	}
}

func TestLoadPrimeVocabulary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "primes.yaml")
	content := "GOOD:\n  - good\n  - favorable\nBAD:\n  - bad\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	vocab, err := LoadPrimeVocabulary(path)
	if err != nil {
		t.Fatalf("LoadPrimeVocabulary: %v", err)
	}
	if vocab.Size() != 2 {
		t.Errorf("size = %d, want 2", vocab.Size())
	}
	tagger := NewTagger(vocab)
	got := tagger.TagSentence(words("favorable"))
	if !reflect.DeepEqual(got, []string{"GOOD"}) {
		t.Errorf("tags = %v, want [GOOD]", got)
	}
}

func TestLoadPrimeVocabularyErrors(t *testing.T) {
	if _, err := LoadPrimeVocabulary(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(empty, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPrimeVocabulary(empty); err == nil {
		t.Error("expected error for empty vocabulary")
	}
}
