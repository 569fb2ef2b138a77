// Package tariff projects utility unit prices forward under a fixed annual
// escalation rate.
package tariff

import "github.com/iwvelando/pv-viability/pkg/mathutil"

// Schedule holds the escalated unit prices; index 0 is project year 1.
type Schedule struct {
	Energy []float64 // per kWh
	Demand []float64 // per kW
}

// Escalate returns price(y) = base*(1+rate)^y for energy and demand. Nil
// bases count as 0. Negative rates model declining tariffs.
func Escalate(energyBase, demandBase *float64, rate float64, years int) Schedule {
	if years < 0 {
		years = 0
	}
	e0, d0 := deref(energyBase), deref(demandBase)

	s := Schedule{
		Energy: make([]float64, years),
		Demand: make([]float64, years),
	}
	for y := 0; y < years; y++ {
		s.Energy[y] = mathutil.Compound(e0, rate, y)
		s.Demand[y] = mathutil.Compound(d0, rate, y)
	}
	return s
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
