// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/pv-viability/internal/calculator"
	"github.com/iwvelando/pv-viability/pkg/params"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindScenario(results []calculator.ScenarioResult, name string) *calculator.ScenarioResult {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// DirectPurchaseInputs returns a 400 kWp direct purchase reference project
// over 20 years.
func DirectPurchaseInputs() params.Params {
	p := params.Default()
	p.MonthlyConsumptionKWh = params.Float(100_000)
	p.ContractedDemandKW = params.Float(300)
	p.EnergyPrice = params.Float(2.5)
	p.DemandPrice = params.Float(300)
	p.CapacityKWp = 400
	p.PerformanceRatio = 0.82
	p.DegradationRate = 0.007
	p.LifetimeYears = 20
	p.Mode = params.ModeDirectPurchase
	p.CapitalCost = params.Float(12_000_000)
	p.AnnualOpex = 250_000
	p.DiscountRate = 0.10
	p.OMInflation = 0.03
	p.TariffEscalation = 0.06
	return p
}

// PPAInputs returns the same project financed through a PPA.
func PPAInputs() params.Params {
	p := DirectPurchaseInputs()
	p.Mode = params.ModePPA
	p.CapitalCost = nil
	p.AnnualOpex = 150_000
	p.PPAInitialPrice = params.Float(2.2)
	p.PPAEscalator = 0.02
	return p
}
