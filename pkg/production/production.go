// Package production estimates the yearly energy generated by a PV system
// over its lifetime.
package production

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Series holds index-aligned yearly values; index 0 is project year 1.
type Series struct {
	EnergyKWh   []float64
	Degradation []float64
}

// Estimate returns the generation for each of the given years. The annual
// yield is the sum of the monthly irradiation profile scaled by capacity and
// performance ratio, reduced by (1-degradation)^y in year index y.
func Estimate(capacityKWp, performanceRatio, degradationRate float64, years int, profile []float64) Series {
	if years < 0 {
		years = 0
	}
	baseYield := floats.Sum(profile) * capacityKWp * performanceRatio

	s := Series{
		EnergyKWh:   make([]float64, years),
		Degradation: make([]float64, years),
	}
	for y := 0; y < years; y++ {
		factor := math.Pow(1-degradationRate, float64(y))
		s.Degradation[y] = factor
		s.EnergyKWh[y] = baseYield * factor
	}
	return s
}

// Total returns the lifetime generation.
func (s Series) Total() float64 {
	return floats.Sum(s.EnergyKWh)
}
