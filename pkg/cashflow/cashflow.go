// Package cashflow builds the year-0..N project cashflow table.
package cashflow

import (
	"github.com/iwvelando/pv-viability/pkg/mathutil"
)

// Year is one row of the cashflow table. Year 0 holds the upfront outlay.
type Year struct {
	Year           int     `json:"year" yaml:"year"`
	Flow           float64 `json:"flow" yaml:"flow"`
	DiscountedFlow float64 `json:"discountedFlow" yaml:"discountedFlow"`
	Cumulative     float64 `json:"cumulative" yaml:"cumulative"`
}

// Build prepends the year-0 flow (the negated initial outlay) to the base
// flows and discounts every entry at discountRate. The result always has
// len(baseFlows)+1 rows.
func Build(initialOutlay float64, baseFlows []float64, discountRate float64) []Year {
	rows := make([]Year, 0, len(baseFlows)+1)

	cumulative := 0.0
	add := func(i int, flow float64) {
		cumulative += flow
		rows = append(rows, Year{
			Year:           i,
			Flow:           flow,
			DiscountedFlow: mathutil.Discount(flow, discountRate, i),
			Cumulative:     cumulative,
		})
	}

	// PPA has no outlay; keep year 0 at +0 rather than -0.
	flow0 := 0.0
	if initialOutlay != 0 {
		flow0 = -initialOutlay
	}
	add(0, flow0)
	for i, flow := range baseFlows {
		add(i+1, flow)
	}
	return rows
}

// Flows extracts the undiscounted flow column.
func Flows(rows []Year) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Flow
	}
	return out
}

// DiscountedFlows extracts the discounted flow column.
func DiscountedFlows(rows []Year) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.DiscountedFlow
	}
	return out
}
