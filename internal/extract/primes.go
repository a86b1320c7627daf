package extract

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rbaumann/culpa/internal/model"
	"gopkg.in/yaml.v3"
)

// PrimeVocabulary is the closed tagging vocabulary of semantic primitives
// (after Wierzbicka's Natural Semantic Metalanguage). Matching is
// lexical-surface and synonym-table based, not learned: each primitive
// maps to the surface lemmas that trigger it. Immutable after
// construction; loaded once and shared by reference.
type PrimeVocabulary struct {
	singles map[string][]string // lemma -> primitive IDs
	phrases map[string][]string // multiword lowercase phrase -> primitive IDs
	size    int
}

// defaultPrimeTable is the built-in 65-entry vocabulary with a small
// synonym set per primitive.
var defaultPrimeTable = map[string][]string{
	// Substantives
	"I": {"i"}, "YOU": {"you"}, "SOMEONE": {"someone", "somebody"},
	"SOMETHING": {"something"}, "PEOPLE": {"people"}, "BODY": {"body"},
	// Relational substantives
	"KIND": {"kind", "type", "sort"}, "PART": {"part"},
	// Determiners
	"THIS": {"this"}, "THE SAME": {"the same"}, "OTHER": {"other", "another"}, "ELSE": {"else"},
	// Quantifiers
	"ONE": {"one"}, "TWO": {"two"}, "SOME": {"some"}, "ALL": {"all"},
	"MUCH~MANY": {"much", "many"}, "LITTLE~FEW": {"little", "few"},
	// Evaluators
	"GOOD": {"good", "well"}, "BAD": {"bad"},
	// Descriptors
	"BIG": {"big", "large"}, "SMALL": {"small"},
	// Mental predicates
	"THINK": {"think", "believe"}, "KNOW": {"know"}, "WANT": {"want"},
	"DON'T WANT": {"don't want", "do not want"}, "FEEL": {"feel"},
	"SEE": {"see"}, "HEAR": {"hear"},
	// Speech
	"SAY": {"say", "said", "state", "stated"}, "WORDS": {"word"}, "TRUE": {"true"},
	// Actions, events, movement
	"DO": {"do"}, "HAPPEN": {"happen", "occur"}, "MOVE": {"move"},
	// Location, existence, specification
	"BE": {"be"}, "THERE IS": {"there is", "there are"}, "HAVE": {"have"},
	// Life and death
	"LIVE": {"live"}, "DIE": {"die"},
	// Time
	"WHEN": {"when"}, "NOW": {"now"}, "BEFORE": {"before"}, "AFTER": {"after"},
	"A LONG TIME": {"a long time"}, "A SHORT TIME": {"a short time"},
	"FOR SOME TIME": {"for some time"}, "MOMENT": {"moment"},
	// Space
	"WHERE": {"where"}, "HERE": {"here"}, "ABOVE": {"above"}, "BELOW": {"below"},
	"FAR": {"far"}, "NEAR": {"near"}, "SIDE": {"side"}, "INSIDE": {"inside"},
	"TOUCH": {"touch"},
	// Logical concepts
	"NOT": {"not", "n't", "never"}, "MAYBE": {"maybe", "perhaps", "possibly"},
	"CAN": {"can", "could"}, "BECAUSE": {"because"}, "IF": {"if"},
	// Intensifier, augmentor
	"VERY": {"very", "really", "extremely"}, "MORE": {"more"},
	// Similarity
	"LIKE": {"like"},
}

// DefaultPrimeVocabulary returns the built-in table.
func DefaultPrimeVocabulary() *PrimeVocabulary {
	return newPrimeVocabulary(defaultPrimeTable)
}

// LoadPrimeVocabulary reads a YAML file mapping primitive IDs to surface
// lemma lists and builds a vocabulary from it.
func LoadPrimeVocabulary(path string) (*PrimeVocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prime vocabulary: %w", err)
	}
	var table map[string][]string
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse prime vocabulary: %w", err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("prime vocabulary %s is empty", path)
	}
	return newPrimeVocabulary(table), nil
}

func newPrimeVocabulary(table map[string][]string) *PrimeVocabulary {
	v := &PrimeVocabulary{
		singles: make(map[string][]string),
		phrases: make(map[string][]string),
		size:    len(table),
	}
	for prime, surfaces := range table {
		for _, s := range surfaces {
			s = strings.ToLower(strings.TrimSpace(s))
			if s == "" {
				continue
			}
			if strings.Contains(s, " ") {
				v.phrases[s] = append(v.phrases[s], prime)
			} else {
				v.singles[s] = append(v.singles[s], prime)
			}
		}
	}
	return v
}

// Size returns the number of primitives in the vocabulary.
func (v *PrimeVocabulary) Size() int { return v.size }

// Tagger matches token structure against a prime vocabulary. Untagged
// spans are legal and common; no tag is not an error.
type Tagger struct {
	vocab *PrimeVocabulary
}

// NewTagger creates a tagger over the given vocabulary.
func NewTagger(vocab *PrimeVocabulary) *Tagger {
	if vocab == nil {
		vocab = DefaultPrimeVocabulary()
	}
	return &Tagger{vocab: vocab}
}

// TagSentence returns the deduplicated, sorted set of primitives triggered
// anywhere in the sentence. Multiword phrases are matched greedily before
// single lemmas, so "a long time" does not also fire ONE via "a".
func (t *Tagger) TagSentence(tokens []model.Token) []string {
	return t.tagRange(tokens, 0, len(tokens))
}

// TagSpan returns the primitives triggered inside one extracted span.
func (t *Tagger) TagSpan(tokens []model.Token, span model.Span) []string {
	if span.Start < 0 || span.End > len(tokens) || span.Start >= span.End {
		return nil
	}
	return t.tagRange(tokens, span.Start, span.End)
}

func (t *Tagger) tagRange(tokens []model.Token, start, end int) []string {
	seen := make(map[string]bool)
	i := start
	for i < end {
		matched := 0
		// Longest phrase first, up to four tokens.
		for n := 4; n >= 2; n-- {
			if i+n > end {
				continue
			}
			phrase := joinLower(tokens[i : i+n])
			if primes, ok := t.vocab.phrases[phrase]; ok {
				for _, p := range primes {
					seen[p] = true
				}
				matched = n
				break
			}
		}
		if matched > 0 {
			i += matched
			continue
		}
		if primes, ok := t.vocab.singles[strings.ToLower(tokens[i].Text)]; ok {
			for _, p := range primes {
				seen[p] = true
			}
		} else if primes, ok := t.vocab.singles[tokens[i].Lemma]; ok {
			for _, p := range primes {
				seen[p] = true
			}
		}
		i++
	}
	if len(seen) == 0 {
		return nil
	}
	tags := make([]string, 0, len(seen))
	for p := range seen {
		tags = append(tags, p)
	}
	sort.Strings(tags)
	return tags
}

func joinLower(tokens []model.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = strings.ToLower(t.Text)
	}
	return strings.Join(parts, " ")
}
