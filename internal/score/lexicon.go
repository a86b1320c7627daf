package score

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PolarityLexicon holds the per-lemma sentiment weights and the marker
// word classes the vector scorer combines. Immutable after construction;
// loaded once and shared by reference across sentences.
type PolarityLexicon struct {
	Weights      map[string]float64 // lemma -> polarity in [-1, 1]
	Modals       map[string]bool    // engagement markers
	Risk         map[string]bool    // risk markers
	Negators     map[string]bool
	Intensifiers map[string]float64 // lemma -> scale factor (> 1)
}

// DefaultPolarityLexicon returns the built-in financial-disclosure table.
func DefaultPolarityLexicon() *PolarityLexicon {
	return &PolarityLexicon{
		Weights: map[string]float64{
			"good": 1, "strong": 1, "growth": 1, "increase": 1,
			"positive": 1, "benefit": 1, "advantage": 1, "improve": 0.8,
			"gain": 0.8, "opportunity": 0.6,
			"risk": -1, "adverse": -1, "decrease": -1, "decline": -1,
			"negative": -1, "loss": -1, "threat": -1, "danger": -1,
			"harm": -0.8, "weak": -0.8, "uncertainty": -0.6, "volatile": -0.6,
			"disrupt": -0.8, "litigation": -0.6,
		},
		Modals: map[string]bool{
			"will": true, "can": true, "may": true, "could": true,
			"would": true, "should": true,
		},
		Risk: map[string]bool{
			"risk": true, "may": true, "could": true, "might": true,
		},
		Negators: map[string]bool{
			"not": true, "never": true, "no": true, "n't": true,
		},
		Intensifiers: map[string]float64{
			"very": 1.5, "extremely": 1.8, "highly": 1.5,
			"significantly": 1.5, "materially": 1.5, "really": 1.3,
			"substantially": 1.5,
		},
	}
}

// polarityFile is the YAML shape of a lexicon override.
type polarityFile struct {
	Weights      map[string]float64 `yaml:"weights"`
	Modals       []string           `yaml:"modals"`
	Risk         []string           `yaml:"risk"`
	Negators     []string           `yaml:"negators"`
	Intensifiers map[string]float64 `yaml:"intensifiers"`
}

// LoadPolarityLexicon reads a YAML lexicon file. Sections left out of the
// file fall back to the defaults.
func LoadPolarityLexicon(path string) (*PolarityLexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read polarity lexicon: %w", err)
	}
	var pf polarityFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse polarity lexicon: %w", err)
	}

	lex := DefaultPolarityLexicon()
	if len(pf.Weights) > 0 {
		lex.Weights = pf.Weights
	}
	if len(pf.Modals) > 0 {
		lex.Modals = toSet(pf.Modals)
	}
	if len(pf.Risk) > 0 {
		lex.Risk = toSet(pf.Risk)
	}
	if len(pf.Negators) > 0 {
		lex.Negators = toSet(pf.Negators)
	}
	if len(pf.Intensifiers) > 0 {
		lex.Intensifiers = pf.Intensifiers
	}
	return lex, nil
}

func toSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
