// Package savings combines generation, tariffs, and a pricing strategy into
// yearly cost and savings projections.
package savings

import (
	"github.com/iwvelando/pv-viability/pkg/mathutil"
	"github.com/iwvelando/pv-viability/pkg/pricing"
	"github.com/iwvelando/pv-viability/pkg/production"
	"github.com/iwvelando/pv-viability/pkg/tariff"
)

// Projection is one project year. Year is 1-indexed.
type Projection struct {
	Year              int     `json:"year" yaml:"year"`
	EnergyKWh         float64 `json:"energyKWh" yaml:"energyKWh"`
	EnergyTariff      float64 `json:"energyTariff" yaml:"energyTariff"`
	DemandTariff      float64 `json:"demandTariff" yaml:"demandTariff"`
	CostWithoutSystem float64 `json:"costWithoutSystem" yaml:"costWithoutSystem"`
	CostWithSystem    float64 `json:"costWithSystem" yaml:"costWithSystem"`
	Savings           float64 `json:"savings" yaml:"savings"`
	Opex              float64 `json:"opex" yaml:"opex"`
	DegradationFactor float64 `json:"degradationFactor" yaml:"degradationFactor"`
}

// Input gathers everything the estimator needs. Production and Tariffs must
// cover at least Years entries.
type Input struct {
	Years                int
	AnnualConsumptionKWh float64
	ContractedDemandKW   float64
	BaseOpex             float64
	OMInflation          float64
	Production           production.Series
	Tariffs              tariff.Schedule
	Strategy             pricing.Strategy
}

// Estimate returns one Projection per year and the matching base flows
// (savings minus that year's opex) that feed years 1..N of the cashflow.
//
// Savings are floored at zero, so a year costlier than the baseline shows no
// savings; the loss still reaches the cashflow through the opex term.
func Estimate(in Input) ([]Projection, []float64) {
	projections := make([]Projection, 0, in.Years)
	baseFlows := make([]float64, 0, in.Years)

	for y := 0; y < in.Years; y++ {
		opex := mathutil.Compound(in.BaseOpex, in.OMInflation, y)
		energyTariff := in.Tariffs.Energy[y]
		demandTariff := in.Tariffs.Demand[y]

		baseline := in.AnnualConsumptionKWh*energyTariff + in.ContractedDemandKW*demandTariff
		kwh := in.Production.EnergyKWh[y]
		withSystem := in.Strategy.YearCost(y, kwh, opex, baseline)
		saved := mathutil.FloorZero(baseline - withSystem)

		projections = append(projections, Projection{
			Year:              y + 1,
			EnergyKWh:         kwh,
			EnergyTariff:      energyTariff,
			DemandTariff:      demandTariff,
			CostWithoutSystem: baseline,
			CostWithSystem:    withSystem,
			Savings:           saved,
			Opex:              opex,
			DegradationFactor: in.Production.Degradation[y],
		})
		baseFlows = append(baseFlows, saved-opex)
	}

	return projections, baseFlows
}
