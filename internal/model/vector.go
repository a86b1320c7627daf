package model

// Vector3 is one half of a VectorPair. Dimension meaning depends on which
// half it is: warm = [positivity, engagement, optimism], cold =
// [negativity, risk, uncertainty]. Every dimension is constrained to
// [0.0, 1.0]; the scorer clamps before publishing.
type Vector3 [3]float64

// Dimension indices, valid for both halves.
const (
	DimPositivity = 0 // warm
	DimEngagement = 1
	DimOptimism   = 2

	DimNegativity  = 0 // cold
	DimRisk        = 1
	DimUncertainty = 2
)

// Clamp returns a copy with every dimension forced into [0, 1].
func (v Vector3) Clamp() Vector3 {
	for i, x := range v {
		if x < 0 {
			v[i] = 0
		} else if x > 1 {
			v[i] = 1
		}
	}
	return v
}

// InRange reports whether every dimension already lies in [0, 1].
func (v Vector3) InRange() bool {
	for _, x := range v {
		if x < 0 || x > 1 {
			return false
		}
	}
	return true
}

// IsZero reports whether the vector carries no signal at all.
func (v Vector3) IsZero() bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

// Add returns the element-wise sum. Used only during aggregation; sums are
// intermediate values and may exceed 1 before the mean is taken.
func (v Vector3) Add(o Vector3) Vector3 {
	for i := range v {
		v[i] += o[i]
	}
	return v
}

// Scale returns the vector multiplied by f.
func (v Vector3) Scale(f float64) Vector3 {
	for i := range v {
		v[i] *= f
	}
	return v
}

// VectorPair is the warm/cold sentiment descriptor of one Sentence, or the
// arithmetic mean over a group of Sentences for an Entity. Immutable once
// produced by the scorer.
type VectorPair struct {
	Warm Vector3 `json:"warm_vector"`
	Cold Vector3 `json:"cold_vector"`
}

// InRange reports whether all six dimensions lie in [0, 1].
func (p VectorPair) InRange() bool {
	return p.Warm.InRange() && p.Cold.InRange()
}

// MeanVectors computes the arithmetic mean of a non-empty set of pairs.
// A single-element set yields that element unchanged.
func MeanVectors(pairs []VectorPair) VectorPair {
	if len(pairs) == 0 {
		return VectorPair{}
	}
	var sum VectorPair
	for _, p := range pairs {
		sum.Warm = sum.Warm.Add(p.Warm)
		sum.Cold = sum.Cold.Add(p.Cold)
	}
	f := 1.0 / float64(len(pairs))
	return VectorPair{Warm: sum.Warm.Scale(f), Cold: sum.Cold.Scale(f)}
}
