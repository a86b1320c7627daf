package enrich

import (
	"sort"
	"strings"

	"github.com/rbaumann/culpa/internal/model"
	"github.com/rbaumann/culpa/internal/score"
)

// priorityTerms marks concepts likely to resolve against an encyclopedia:
// institutional and macro-financial vocabulary.
var priorityTerms = []string{
	"company", "corporation", "inc", "llc", "pandemic", "covid", "crisis",
	"technology", "system", "market", "industry", "regulation", "government",
	"economic", "financial", "business", "operations", "revenue", "debt",
}

// CandidateConcepts selects the distinct normalized concepts of a run
// (entity canonical names plus phenomenon texts), ranked so that likely
// encyclopedia entries come first, capped at max lookups.
func CandidateConcepts(entities []model.Entity, sentences []model.Sentence, max int) []string {
	seen := make(map[string]bool)
	var candidates []string

	add := func(norm string) {
		if norm == "" || seen[norm] {
			return
		}
		seen[norm] = true
		candidates = append(candidates, norm)
	}

	for i := range entities {
		add(entities[i].Name)
	}
	for i := range sentences {
		for _, span := range sentences[i].Phenomena {
			add(score.NormalizeConcept(span.Text))
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		pi, pj := conceptPriority(candidates[i]), conceptPriority(candidates[j])
		if pi != pj {
			return pi > pj
		}
		return candidates[i] < candidates[j]
	})

	if max > 0 && len(candidates) > max {
		candidates = candidates[:max]
	}
	return candidates
}

// conceptPriority scores how promising a concept is as a lookup target.
func conceptPriority(concept string) int {
	p := 0
	for _, term := range priorityTerms {
		if strings.Contains(concept, term) {
			p += 2
			break
		}
	}
	if len(strings.Fields(concept)) >= 2 {
		p++
	}
	return p
}
