package model

// Entity is a canonicalized subject referent. Distinct normalized strings
// are distinct Entities; no fuzzy or semantic merging is attempted (a known
// limitation of the normalization-as-merge-key approach).
type Entity struct {
	Name     string   `json:"entity"`             // canonical (normalized) form
	Aliases  []string `json:"aliases,omitempty"`  // distinct surface forms seen
	Mentions []int    `json:"mentions,omitempty"` // ordinals of sentences where it is a subject

	// Vectors is the arithmetic mean over the VectorPairs of every
	// mentioning sentence, computed once per Entity regardless of how
	// many aliases contributed.
	Vectors VectorPair `json:"vectors"`
}

// MentionCount returns the number of contributing sentences.
func (e *Entity) MentionCount() int {
	return len(e.Mentions)
}

// RiskTier is the discrete classification of a Responsibility Ratio.
type RiskTier string

const (
	TierVeryLow  RiskTier = "Very Low Risk"
	TierLow      RiskTier = "Low Risk"
	TierModerate RiskTier = "Moderate Risk"
	TierHigh     RiskTier = "High Risk"
	TierVeryHigh RiskTier = "Very High Risk"

	// TierUndefined is the sentinel classification when the Negligence
	// Score is exactly zero. The ratio is never computed in that case;
	// division by zero must not occur.
	TierUndefined RiskTier = "Undefined — insufficient negative signal"
)

// ResponsibilityRecord is the per-Entity output of the responsibility
// engine. Intention and Negligence are always >= 0. Ratio is nil exactly
// when Negligence == 0, in which case Tier is TierUndefined.
type ResponsibilityRecord struct {
	Entity     string     `json:"entity"`
	Mentions   int        `json:"mentions"`
	Intention  float64    `json:"intention_score"`
	Negligence float64    `json:"negligence_score"`
	Ratio      *float64   `json:"responsibility_ratio,omitempty"`
	Tier       RiskTier   `json:"risk_tier"`
	AvgVectors VectorPair `json:"avg_vectors"`
}
