package score

import (
	"sort"
	"strings"

	"github.com/rbaumann/culpa/internal/model"
)

// Aggregator groups sentence-level subjects into Entities and computes the
// per-Entity mean VectorPair. Aggregation is a sequential single-pass
// reduction: Entity identity merges across sentences, so it cannot be
// parallelized the way per-sentence stages can.
type Aggregator struct{}

// NewAggregator creates a new entity aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// leading determiners stripped during canonicalization
var leadingDeterminers = map[string]bool{
	"the": true, "a": true, "an": true, "this": true, "that": true,
	"these": true, "those": true, "our": true, "its": true, "their": true,
}

// NormalizeConcept canonicalizes a surface form: lower-case, trim,
// collapse internal whitespace, strip one leading determiner if the
// remainder is non-empty. Distinct normalized strings are distinct
// Entities; no fuzzy merging is attempted.
func NormalizeConcept(surface string) string {
	fields := strings.Fields(strings.ToLower(surface))
	if len(fields) > 1 && leadingDeterminers[fields[0]] {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}

type entityAccum struct {
	aliases  map[string]bool
	ordinals []int
	pairs    []model.VectorPair
	lastSeen int
}

// Aggregate reduces all sentences of a document into the Entity set. An
// entity's vector is the arithmetic mean over the VectorPairs of every
// sentence in which it appears as a subject, counted once per sentence no
// matter how many subject spans of that sentence normalize to it.
func (a *Aggregator) Aggregate(sentences []model.Sentence) []model.Entity {
	accum := make(map[string]*entityAccum)
	var order []string

	for i := range sentences {
		sent := &sentences[i]
		if sent.Degenerate {
			continue
		}
		for _, span := range sent.Subjects {
			name := NormalizeConcept(span.Text)
			if name == "" {
				continue
			}
			ea, ok := accum[name]
			if !ok {
				ea = &entityAccum{aliases: make(map[string]bool), lastSeen: -1}
				accum[name] = ea
				order = append(order, name)
			}
			ea.aliases[span.Text] = true
			if ea.lastSeen != sent.Ordinal {
				ea.ordinals = append(ea.ordinals, sent.Ordinal)
				ea.pairs = append(ea.pairs, sent.Vectors)
				ea.lastSeen = sent.Ordinal
			}
		}
	}

	entities := make([]model.Entity, 0, len(accum))
	for _, name := range order {
		ea := accum[name]
		aliases := make([]string, 0, len(ea.aliases))
		for alias := range ea.aliases {
			aliases = append(aliases, alias)
		}
		sort.Strings(aliases)
		sort.Ints(ea.ordinals)
		entities = append(entities, model.Entity{
			Name:     name,
			Aliases:  aliases,
			Mentions: ea.ordinals,
			Vectors:  model.MeanVectors(ea.pairs),
		})
	}

	sort.SliceStable(entities, func(i, j int) bool {
		if len(entities[i].Mentions) != len(entities[j].Mentions) {
			return len(entities[i].Mentions) > len(entities[j].Mentions)
		}
		return entities[i].Name < entities[j].Name
	})
	return entities
}
