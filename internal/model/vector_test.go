package model

import (
	"errors"
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	v := Vector3{-0.5, 0.5, 1.5}.Clamp()
	if v != (Vector3{0, 0.5, 1}) {
		t.Fatalf("Clamp = %v", v)
	}
}

func TestInRange(t *testing.T) {
	if !(Vector3{0, 0.5, 1}).InRange() {
		t.Error("boundary values are in range")
	}
	if (Vector3{0, 0, 1.0001}).InRange() {
		t.Error("1.0001 is out of range")
	}
	if (Vector3{-0.0001, 0, 0}).InRange() {
		t.Error("-0.0001 is out of range")
	}
}

func TestMeanVectors(t *testing.T) {
	if got := MeanVectors(nil); got != (VectorPair{}) {
		t.Errorf("mean of nothing = %+v, want zero pair", got)
	}

	single := VectorPair{Warm: Vector3{0.1, 0.2, 0.3}, Cold: Vector3{0.4, 0.5, 0.6}}
	if got := MeanVectors([]VectorPair{single}); got != single {
		t.Errorf("single-element mean = %+v, want the element unchanged", got)
	}

	a := VectorPair{Warm: Vector3{0.2, 0.2, 0.2}, Cold: Vector3{0.4, 0.4, 0.4}}
	b := VectorPair{Warm: Vector3{0.6, 0.6, 0.6}, Cold: Vector3{0.8, 0.8, 0.8}}
	got := MeanVectors([]VectorPair{a, b})
	if math.Abs(got.Warm[0]-0.4) > 1e-9 || math.Abs(got.Cold[0]-0.6) > 1e-9 {
		t.Errorf("mean = %+v", got)
	}
}

func TestCheckRange(t *testing.T) {
	ok := VectorPair{Warm: Vector3{0, 0.5, 1}, Cold: Vector3{1, 0, 0.5}}
	if err := CheckRange(3, ok); err != nil {
		t.Fatalf("CheckRange on valid pair: %v", err)
	}

	bad := VectorPair{Cold: Vector3{0, 1.5, 0}}
	err := CheckRange(7, bad)
	if err == nil {
		t.Fatal("expected error for out-of-range dimension")
	}
	var rangeErr *ScoringRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("err type = %T", err)
	}
	if rangeErr.Ordinal != 7 || rangeErr.Dimension != "cold.risk" || rangeErr.Value != 1.5 {
		t.Errorf("error = %+v, want sentence 7 cold.risk 1.5", rangeErr)
	}
}
