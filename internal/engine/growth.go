package engine

import "math"

// Compounding math for the progress meter. Growth rates are plain
// percentages: 5 means 5% per whole completion.

// CompletionIncrement converts a trade gain into fractional completions.
// A gain equal to the growth rate is exactly one completion.
func CompletionIncrement(gainPercent, growthPerCompletion float64) float64 {
	return gainPercent / growthPerCompletion
}

// CompoundFactor returns the balance multiplier for a fractional number
// of completions: (1 + rate/100)^completions. This is the canonical
// continuous form; it is order-independent, so many partial increments
// multiply to the same factor as one combined increment.
func CompoundFactor(growthPerCompletion, completions float64) float64 {
	return math.Pow(1+growthPerCompletion/100, completions)
}

// GrowthPercent is the unrounded percentage gain over the starting value.
// Rounding happens at display time only; ranking uses this raw value.
func GrowthPercent(balance, startingValue float64) float64 {
	if startingValue <= 0 {
		return 0
	}
	return (balance - startingValue) / startingValue * 100
}

// WholeCompletionsCrossed counts the whole-completion thresholds crossed
// when completions move from oldC to newC. Discipline rises only on these
// crossings, never from fractional accrual alone.
func WholeCompletionsCrossed(oldC, newC float64) int {
	return int(math.Floor(newC)) - int(math.Floor(oldC))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
