package engine

import (
	"math"
	"testing"
)

func TestCompoundFactorOrderIndependent(t *testing.T) {
	split := CompoundFactor(5, 0.3) * CompoundFactor(5, 0.7)
	whole := CompoundFactor(5, 1)
	if math.Abs(split-whole) > 1e-12 {
		t.Fatalf("split=%v whole=%v", split, whole)
	}
	if whole != 1.05 {
		t.Fatalf("CompoundFactor(5,1)=%v, want 1.05", whole)
	}
}

func TestGrowthPercent(t *testing.T) {
	if got := GrowthPercent(110, 100); math.Abs(got-10) > 1e-12 {
		t.Fatalf("GrowthPercent(110,100)=%v, want 10", got)
	}
	if got := GrowthPercent(90, 100); math.Abs(got+10) > 1e-12 {
		t.Fatalf("GrowthPercent(90,100)=%v, want -10", got)
	}
	if got := GrowthPercent(110, 0); got != 0 {
		t.Fatalf("GrowthPercent with zero start=%v, want 0", got)
	}
}

func TestWholeCompletionsCrossed(t *testing.T) {
	if got := WholeCompletionsCrossed(0, 0.5); got != 0 {
		t.Fatalf("crossed(0,0.5)=%d, want 0", got)
	}
	if got := WholeCompletionsCrossed(0.8, 1.1); got != 1 {
		t.Fatalf("crossed(0.8,1.1)=%d, want 1", got)
	}
	if got := WholeCompletionsCrossed(0.9, 3.2); got != 3 {
		t.Fatalf("crossed(0.9,3.2)=%d, want 3", got)
	}
}

func TestCompletionIncrement(t *testing.T) {
	if got := CompletionIncrement(2.5, 5); got != 0.5 {
		t.Fatalf("CompletionIncrement(2.5,5)=%v, want 0.5", got)
	}
	if got := CompletionIncrement(5, 5); got != 1 {
		t.Fatalf("CompletionIncrement(5,5)=%v, want 1", got)
	}
}
