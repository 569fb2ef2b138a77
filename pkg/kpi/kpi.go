// Package kpi derives the project's financial indicators from its cashflow
// and yearly projections. Every indicator can be absent; none is ever NaN or
// infinite.
package kpi

import (
	"gonum.org/v1/gonum/floats"

	"github.com/iwvelando/pv-viability/pkg/cashflow"
	"github.com/iwvelando/pv-viability/pkg/finance"
	"github.com/iwvelando/pv-viability/pkg/mathutil"
	"github.com/iwvelando/pv-viability/pkg/optional"
	"github.com/iwvelando/pv-viability/pkg/savings"
)

// Summary holds the project KPIs.
type Summary struct {
	NPV               optional.Float `json:"npv" yaml:"npv"`
	IRR               optional.Float `json:"irr" yaml:"irr"`
	SimplePayback     optional.Int   `json:"simplePayback" yaml:"simplePayback"`
	DiscountedPayback optional.Int   `json:"discountedPayback" yaml:"discountedPayback"`
	ROI               optional.Float `json:"roi" yaml:"roi"`
	LCOE              optional.Float `json:"lcoe" yaml:"lcoe"`
}

// Input is what Compute needs. CapitalCost only counts when DirectPurchase
// is set.
type Input struct {
	DirectPurchase bool
	CapitalCost    float64
	DiscountRate   float64
	Cashflow       []cashflow.Year
	Projections    []savings.Projection
}

// Compute evaluates every KPI independently. A panic while computing one
// indicator leaves only that indicator absent.
func Compute(in Input) Summary {
	flows := cashflow.Flows(in.Cashflow)

	return Summary{
		NPV: guard(func() optional.Float {
			return optional.Finite(finance.NPV(in.DiscountRate, flows))
		}),
		IRR: guard(func() optional.Float {
			rate, err := finance.IRR(flows)
			if err != nil {
				return optional.None[float64]()
			}
			return optional.Finite(rate)
		}),
		SimplePayback: guard(func() optional.Int {
			return payback(flows)
		}),
		DiscountedPayback: guard(func() optional.Int {
			return payback(cashflow.DiscountedFlows(in.Cashflow))
		}),
		ROI: guard(func() optional.Float {
			return roi(in)
		}),
		LCOE: guard(func() optional.Float {
			return lcoe(in)
		}),
	}
}

func guard[T optional.Number](fn func() optional.Value[T]) (v optional.Value[T]) {
	defer func() {
		if r := recover(); r != nil {
			v = optional.None[T]()
		}
	}()
	return fn()
}

func payback(flows []float64) optional.Int {
	year, ok := finance.Payback(flows)
	if !ok {
		return optional.None[int]()
	}
	return optional.Of(year)
}

// roi is (total savings - total opex) / capital, defined only for a direct
// purchase with positive capital.
func roi(in Input) optional.Float {
	if !in.DirectPurchase || in.CapitalCost <= 0 {
		return optional.None[float64]()
	}
	saved := make([]float64, len(in.Projections))
	opex := make([]float64, len(in.Projections))
	for i, p := range in.Projections {
		saved[i] = p.Savings
		opex[i] = p.Opex
	}
	return optional.Finite((floats.Sum(saved) - floats.Sum(opex)) / in.CapitalCost)
}

// lcoe discounts year-y opex and generation at (1+r)^(y+1); capital is
// counted undiscounted at year 0.
func lcoe(in Input) optional.Float {
	cost := make([]float64, len(in.Projections))
	energy := make([]float64, len(in.Projections))
	for i, p := range in.Projections {
		cost[i] = mathutil.Discount(p.Opex, in.DiscountRate, i+1)
		energy[i] = mathutil.Discount(p.EnergyKWh, in.DiscountRate, i+1)
	}

	discountedEnergy := floats.Sum(energy)
	if !(discountedEnergy > 0) {
		return optional.None[float64]()
	}

	discountedCost := floats.Sum(cost)
	if in.DirectPurchase {
		discountedCost += in.CapitalCost
	}
	return optional.Finite(discountedCost / discountedEnergy)
}
