// Package calculator runs the full viability pipeline for one set of inputs:
// production, tariffs, pricing, savings, cashflow and KPIs.
package calculator

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iwvelando/pv-viability/internal/config"
	"github.com/iwvelando/pv-viability/pkg/cashflow"
	"github.com/iwvelando/pv-viability/pkg/kpi"
	"github.com/iwvelando/pv-viability/pkg/params"
	"github.com/iwvelando/pv-viability/pkg/pricing"
	"github.com/iwvelando/pv-viability/pkg/production"
	"github.com/iwvelando/pv-viability/pkg/savings"
	"github.com/iwvelando/pv-viability/pkg/tariff"
	"github.com/iwvelando/pv-viability/pkg/validation"
)

// resultNamespace seeds the name-based result IDs.
var resultNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/iwvelando/pv-viability/result"))

// Result is the complete output of one calculation.
type Result struct {
	ID          string               `json:"id" yaml:"id"`
	Inputs      params.Params        `json:"inputs" yaml:"inputs"`
	Issues      []validation.Issue   `json:"issues" yaml:"issues"`
	Projections []savings.Projection `json:"projections" yaml:"projections"`
	Cashflow    []cashflow.Year      `json:"cashflow" yaml:"cashflow"`
	KPIs        kpi.Summary          `json:"kpis" yaml:"kpis"`
	Tables      Tables               `json:"tables" yaml:"tables"`

	// LifetimeGenerationKWh is the undiscounted energy over all project years.
	LifetimeGenerationKWh float64 `json:"lifetimeGenerationKWh" yaml:"lifetimeGenerationKWh"`
}

// Tables exposes the intermediate yearly series, index 0 being year 1.
type Tables struct {
	Degradation   []float64 `json:"degradation" yaml:"degradation"`
	EnergyTariffs []float64 `json:"energyTariffs" yaml:"energyTariffs"`
	DemandTariffs []float64 `json:"demandTariffs" yaml:"demandTariffs"`
}

// ScenarioResult pairs a named scenario with its result.
type ScenarioResult struct {
	Name   string `json:"name" yaml:"name"`
	Result Result `json:"result" yaml:"result"`
}

// Calculate runs the pipeline on a copy of p. It never fails: advisory
// problems are reported in Result.Issues and undefined KPIs are absent.
// Identical inputs yield identical results, ID included, and concurrent calls
// share no state.
func Calculate(logger *zap.Logger, p params.Params) Result {
	if logger == nil {
		logger = zap.NewNop()
	}

	in := p.Clone()
	in.Normalize()
	years := max(in.LifetimeYears, 0)

	issues := validation.CheckInputs(in)
	if issues == nil {
		issues = []validation.Issue{}
	}

	generation := production.Estimate(in.CapacityKWp, in.PerformanceRatio, in.DegradationRate, years, in.Profile())
	tariffs := tariff.Escalate(in.EnergyPrice, in.DemandPrice, in.TariffEscalation, years)
	strategy := pricing.New(in)

	projections, baseFlows := savings.Estimate(savings.Input{
		Years:                years,
		AnnualConsumptionKWh: in.AnnualConsumptionKWh(),
		ContractedDemandKW:   params.Value(in.ContractedDemandKW),
		BaseOpex:             in.AnnualOpex,
		OMInflation:          in.OMInflation,
		Production:           generation,
		Tariffs:              tariffs,
		Strategy:             strategy,
	})

	directPurchase := strategy.Mode() == params.ModeDirectPurchase
	outlay := 0.0
	if directPurchase {
		outlay = params.Value(in.CapitalCost)
	}
	rows := cashflow.Build(outlay, baseFlows, in.DiscountRate)

	summary := kpi.Compute(kpi.Input{
		DirectPurchase: directPurchase,
		CapitalCost:    params.Value(in.CapitalCost),
		DiscountRate:   in.DiscountRate,
		Cashflow:       rows,
		Projections:    projections,
	})

	id := resultID(in)
	logger.Debug("calculation complete",
		zap.String("op", "calculator.Calculate"),
		zap.String("id", id),
		zap.String("mode", string(strategy.Mode())),
		zap.Int("years", years),
		zap.Int("issues", len(issues)),
		zap.Stringer("npv", summary.NPV),
		zap.Stringer("irr", summary.IRR),
	)

	return Result{
		ID:          id,
		Inputs:      in,
		Issues:      issues,
		Projections: projections,
		Cashflow:    rows,
		KPIs:        summary,
		Tables: Tables{
			Degradation:   generation.Degradation,
			EnergyTariffs: tariffs.Energy,
			DemandTariffs: tariffs.Demand,
		},
		LifetimeGenerationKWh: generation.Total(),
	}
}

func resultID(in params.Params) string {
	data, err := json.Marshal(in)
	if err != nil {
		return uuid.NewString()
	}
	return uuid.NewSHA1(resultNamespace, data).String()
}

// CalculateScenarios processes every active scenario in conf. Scenarios that
// fail structural validation abort the run before anything is calculated.
func CalculateScenarios(logger *zap.Logger, conf config.Configuration) ([]ScenarioResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var results []ScenarioResult
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "calculator.CalculateScenarios"),
			)
			continue
		}
		results = append(results, ScenarioResult{
			Name:   scenario.Name,
			Result: Calculate(logger.With(zap.String("scenario", scenario.Name)), scenario.Params),
		})
	}
	return results, nil
}
