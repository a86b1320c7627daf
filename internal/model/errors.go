package model

import (
	"errors"
	"fmt"
)

// ErrNothingToAnalyze is returned when a document yields no valid sentence
// at all. Individual degenerate sentences are tolerated; a document made
// entirely of them is not.
var ErrNothingToAnalyze = errors.New("nothing to analyze: no valid sentences in document")

// ParseAdapterError reports malformed input from the upstream parser for
// one sentence. The pipeline records the sentence as degenerate and
// continues; this error never aborts the document.
type ParseAdapterError struct {
	Ordinal int
	Reason  string
}

func (e *ParseAdapterError) Error() string {
	return fmt.Sprintf("parse adapter: sentence %d: %s", e.Ordinal, e.Reason)
}

// ScoringRangeError reports a vector dimension outside [0, 1]. This is an
// internal invariant breach: a correct scorer clamps every dimension, so
// observing this error means a defect, not a recoverable condition.
type ScoringRangeError struct {
	Ordinal   int
	Dimension string
	Value     float64
}

func (e *ScoringRangeError) Error() string {
	return fmt.Sprintf("scoring invariant violated: sentence %d dimension %s = %g outside [0,1]",
		e.Ordinal, e.Dimension, e.Value)
}

var dimensionNames = [2][3]string{
	{"warm.positivity", "warm.engagement", "warm.optimism"},
	{"cold.negativity", "cold.risk", "cold.uncertainty"},
}

// CheckRange validates the [0,1] contract on a published pair and
// identifies the offending dimension.
func CheckRange(ordinal int, p VectorPair) error {
	for hi, half := range [2]Vector3{p.Warm, p.Cold} {
		for di, x := range half {
			if x < 0 || x > 1 {
				return &ScoringRangeError{Ordinal: ordinal, Dimension: dimensionNames[hi][di], Value: x}
			}
		}
	}
	return nil
}
