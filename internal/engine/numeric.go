package engine

import "math"

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// finiteOr returns v, or fallback when v is NaN or infinite.
func finiteOr(v, fallback float64) float64 {
	if isFinite(v) {
		return v
	}
	return fallback
}

// percentOf is plain IEEE division scaled to percent. A zero denominator
// yields NaN or ±Inf; callers decide whether to sanitise.
func percentOf(num, den float64) float64 {
	return num / den * 100
}

// mean returns NaN for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// appendFinite appends the entry only when its value is finite.
func appendFinite[T any](dst []T, entry T, value float64) []T {
	if !isFinite(value) {
		return dst
	}
	return append(dst, entry)
}
