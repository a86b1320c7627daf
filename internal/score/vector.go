package score

import (
	"strings"
	"unicode"

	"github.com/rbaumann/culpa/internal/model"
)

// negationWindow is how many content tokens a negator affects.
const negationWindow = 3

// VectorScorer computes the warm/cold VectorPair of a sentence from
// lexical polarity, semantic-prime presence and sentence-level modifiers.
// Pure and deterministic: same tokens and tags always yield the same
// pair, and every dimension is clamped to [0, 1] before publishing.
type VectorScorer struct {
	lexicon *PolarityLexicon
}

// NewVectorScorer creates a scorer over the given lexicon.
func NewVectorScorer(lexicon *PolarityLexicon) *VectorScorer {
	if lexicon == nil {
		lexicon = DefaultPolarityLexicon()
	}
	return &VectorScorer{lexicon: lexicon}
}

// primeEffect is a fixed per-primitive adjustment to one dimension.
type primeEffect struct {
	cold  bool
	dim   int
	delta float64
}

// Presence of these primitives nudges specific dimensions: modal/maybe
// class raises cold risk and uncertainty, evaluators reinforce polarity.
var primeEffects = map[string]primeEffect{
	"GOOD":  {cold: false, dim: model.DimPositivity, delta: 0.10},
	"CAN":   {cold: false, dim: model.DimEngagement, delta: 0.10},
	"MORE":  {cold: false, dim: model.DimEngagement, delta: 0.05},
	"BAD":   {cold: true, dim: model.DimNegativity, delta: 0.10},
	"MAYBE": {cold: true, dim: model.DimRisk, delta: 0.10},
	"IF":    {cold: true, dim: model.DimUncertainty, delta: 0.10},
}

// Score produces the VectorPair for one sentence. A sentence with no
// scoring signal yields the zero pair for both halves.
func (s *VectorScorer) Score(tokens []model.Token, primes []string) model.VectorPair {
	var (
		posSum, negSum float64
		modalCount     int
		riskCount      int
		totalWords     int
		negRemaining   int
		intensity      = 1.0
	)

	for _, t := range tokens {
		if t.POS == model.POSPunct || !isAlpha(t.Text) {
			continue
		}
		totalWords++
		lower := strings.ToLower(t.Text)

		if s.lexicon.Negators[lower] {
			negRemaining = negationWindow + 1 // +1: decremented below
		}
		if f, ok := s.lexicon.Intensifiers[lower]; ok {
			intensity = f
			if negRemaining > 0 {
				negRemaining--
			}
			continue
		}
		if s.lexicon.Modals[lower] {
			modalCount++
		}
		if s.lexicon.Risk[lower] || s.lexicon.Risk[t.Lemma] {
			riskCount++
		}

		w, ok := s.lexicon.Weights[t.Lemma]
		if !ok {
			w, ok = s.lexicon.Weights[lower]
		}
		if ok {
			c := w * intensity
			if negRemaining > 0 {
				// Negation flips and dampens the contribution.
				c = -0.5 * c
			}
			if c > 0 {
				posSum += c
			} else {
				negSum += -c
			}
			intensity = 1.0
		}

		if negRemaining > 0 {
			negRemaining--
		}
	}

	if totalWords == 0 {
		return model.VectorPair{}
	}

	total := float64(totalWords)
	var warm, cold model.Vector3
	warm[model.DimPositivity] = posSum / total
	warm[model.DimEngagement] = float64(modalCount) / total
	cold[model.DimNegativity] = negSum / total
	cold[model.DimRisk] = float64(riskCount) / total
	if posSum+negSum > 0 {
		warm[model.DimOptimism] = posSum / (posSum + negSum)
		cold[model.DimUncertainty] = negSum / (posSum + negSum)
	}

	for _, prime := range primes {
		eff, ok := primeEffects[prime]
		if !ok {
			continue
		}
		if eff.cold {
			cold[eff.dim] += eff.delta
		} else {
			warm[eff.dim] += eff.delta
		}
	}

	return model.VectorPair{Warm: warm.Clamp(), Cold: cold.Clamp()}
}

func isAlpha(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) && r != '-' && r != '\'' {
			return false
		}
	}
	return word != ""
}
