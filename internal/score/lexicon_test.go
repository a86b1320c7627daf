package score

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPolarityLexicon(t *testing.T) {
	lex := DefaultPolarityLexicon()
	if w := lex.Weights["adverse"]; w >= 0 {
		t.Errorf("adverse weight = %g, want negative", w)
	}
	if w := lex.Weights["growth"]; w <= 0 {
		t.Errorf("growth weight = %g, want positive", w)
	}
	if !lex.Negators["n't"] {
		t.Error("contracted negator missing")
	}
	if f := lex.Intensifiers["materially"]; f <= 1 {
		t.Errorf("materially factor = %g, want > 1", f)
	}
}

func TestLoadPolarityLexiconPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polarity.yaml")
	content := `weights:
  splendid: 1.0
  dire: -1.0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	lex, err := LoadPolarityLexicon(path)
	if err != nil {
		t.Fatalf("LoadPolarityLexicon: %v", err)
	}
	if lex.Weights["splendid"] != 1.0 || lex.Weights["dire"] != -1.0 {
		t.Errorf("override weights not applied: %+v", lex.Weights)
	}
	if _, ok := lex.Weights["adverse"]; ok {
		t.Error("overridden section should replace the default wholesale")
	}
	// Sections absent from the file keep the defaults.
	if !lex.Negators["not"] || !lex.Modals["may"] {
		t.Error("untouched sections lost their defaults")
	}
}

func TestLoadPolarityLexiconMissingFile(t *testing.T) {
	if _, err := LoadPolarityLexicon(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
