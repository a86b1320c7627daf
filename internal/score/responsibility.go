package score

import (
	"sort"

	"github.com/rbaumann/culpa/internal/model"
)

// Intention and negligence dimension weights.
const (
	wPositivity = 0.4
	wEngagement = 0.4
	wOptimism   = 0.2

	wNegativity  = 0.5
	wRisk        = 0.3
	wUncertainty = 0.2
)

// Engine computes Intention and Negligence Scores and the Responsibility
// Ratio (R = I/N) per entity, with the discrete risk tier classification.
type Engine struct{}

// NewEngine creates a responsibility engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Intention derives the Intention Score from an entity's mean warm vector.
// Always >= 0 since every dimension is in [0, 1].
func (e *Engine) Intention(p model.VectorPair) float64 {
	return (p.Warm[model.DimPositivity]*wPositivity +
		p.Warm[model.DimEngagement]*wEngagement +
		p.Warm[model.DimOptimism]*wOptimism) * 100
}

// Negligence derives the Negligence Score from the mean cold vector.
func (e *Engine) Negligence(p model.VectorPair) float64 {
	return (p.Cold[model.DimNegativity]*wNegativity +
		p.Cold[model.DimRisk]*wRisk +
		p.Cold[model.DimUncertainty]*wUncertainty) * 100
}

// Assess produces one ResponsibilityRecord per entity. When Negligence is
// exactly zero the ratio is left nil and the tier is the Undefined
// sentinel; the division is never attempted.
func (e *Engine) Assess(entities []model.Entity) []model.ResponsibilityRecord {
	records := make([]model.ResponsibilityRecord, 0, len(entities))
	for i := range entities {
		ent := &entities[i]
		intention := e.Intention(ent.Vectors)
		negligence := e.Negligence(ent.Vectors)

		rec := model.ResponsibilityRecord{
			Entity:     ent.Name,
			Mentions:   ent.MentionCount(),
			Intention:  intention,
			Negligence: negligence,
			AvgVectors: ent.Vectors,
		}
		if negligence == 0 {
			rec.Tier = model.TierUndefined
		} else {
			ratio := intention / negligence
			rec.Ratio = &ratio
			rec.Tier = ClassifyRatio(ratio)
		}
		records = append(records, rec)
	}

	// Highest ratio first; undefined records sort last.
	sort.SliceStable(records, func(i, j int) bool {
		ri, rj := records[i].Ratio, records[j].Ratio
		switch {
		case ri == nil && rj == nil:
			return records[i].Entity < records[j].Entity
		case ri == nil:
			return false
		case rj == nil:
			return true
		default:
			return *ri > *rj
		}
	})
	return records
}

// ClassifyRatio maps a defined Responsibility Ratio onto its risk tier.
// The conditions use strict comparison in this exact order, so boundary
// values fall to the riskier tier: a ratio of exactly 5 is Moderate, not
// Low.
func ClassifyRatio(ratio float64) model.RiskTier {
	switch {
	case ratio > 10:
		return model.TierVeryLow
	case ratio > 5:
		return model.TierLow
	case ratio > 2:
		return model.TierModerate
	case ratio > 1:
		return model.TierHigh
	default:
		return model.TierVeryHigh
	}
}
