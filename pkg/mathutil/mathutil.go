// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"
)

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// Compound returns base grown by rate for the given number of periods,
// i.e. base * (1+rate)^periods. Negative rates shrink the base.
func Compound(base, rate float64, periods int) float64 {
	return base * math.Pow(1+rate, float64(periods))
}

// Discount returns val expressed in period-0 terms at the given rate,
// i.e. val / (1+rate)^period.
func Discount(val, rate float64, period int) float64 {
	return val / math.Pow(1+rate, float64(period))
}

// FloorZero clamps negative values to zero.
func FloorZero(val float64) float64 {
	return math.Max(val, 0)
}
