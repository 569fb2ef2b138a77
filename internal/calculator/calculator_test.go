package calculator_test

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iwvelando/pv-viability/internal/calculator"
	"github.com/iwvelando/pv-viability/internal/config"
	"github.com/iwvelando/pv-viability/pkg/params"
	"github.com/iwvelando/pv-viability/pkg/testutil"
	"github.com/iwvelando/pv-viability/pkg/validation"
)

func TestDirectPurchaseScenario(t *testing.T) {
	r := calculator.Calculate(zap.NewNop(), testutil.DirectPurchaseInputs())

	if len(r.Cashflow) != 21 {
		t.Fatalf("cashflow length = %d, expected 21", len(r.Cashflow))
	}
	if len(r.Projections) != 20 {
		t.Fatalf("projection count = %d, expected 20", len(r.Projections))
	}
	if r.Cashflow[0].Flow != -12_000_000 {
		t.Errorf("year 0 flow = %v, expected -12000000", r.Cashflow[0].Flow)
	}
	if r.Projections[0].EnergyKWh <= 0 {
		t.Errorf("year 1 generation = %v, expected > 0", r.Projections[0].EnergyKWh)
	}
	for i, p := range r.Projections {
		if p.Year != i+1 {
			t.Errorf("projection %d year = %d, expected %d", i, p.Year, i+1)
		}
	}

	if !r.KPIs.NPV.Present() {
		t.Error("NPV should be present")
	}
	if !r.KPIs.IRR.Present() {
		t.Error("IRR should be present for a cashflow with an upfront outlay")
	}
	if !r.KPIs.ROI.Present() {
		t.Error("ROI should be present in direct purchase mode")
	}
	if !r.KPIs.LCOE.Present() {
		t.Error("LCOE should be present with positive generation")
	}
	if got, ok := r.KPIs.SimplePayback.Get(); !ok || got != 5 {
		t.Errorf("simple payback = %v, expected 5", r.KPIs.SimplePayback)
	}

	if len(r.Tables.Degradation) != 20 || len(r.Tables.EnergyTariffs) != 20 || len(r.Tables.DemandTariffs) != 20 {
		t.Errorf("intermediate tables have unexpected lengths: %d/%d/%d",
			len(r.Tables.Degradation), len(r.Tables.EnergyTariffs), len(r.Tables.DemandTariffs))
	}
	if validation.HasErrors(r.Issues) {
		t.Errorf("unexpected error issues: %v", r.Issues)
	}
}

func TestPPAScenario(t *testing.T) {
	r := calculator.Calculate(nil, testutil.PPAInputs())

	if r.Cashflow[0].Flow != 0 || math.Signbit(r.Cashflow[0].Flow) {
		t.Errorf("year 0 flow = %v, expected +0 for PPA", r.Cashflow[0].Flow)
	}
	if math.Signbit(r.Cashflow[0].DiscountedFlow) || math.Signbit(r.Cashflow[0].Cumulative) {
		t.Errorf("year 0 row carries a negative zero: %+v", r.Cashflow[0])
	}
	if data, err := json.Marshal(r.Cashflow[0]); err != nil || strings.Contains(string(data), "-0") {
		t.Errorf("year 0 row encodes as %s (err %v)", data, err)
	}
	if r.Projections[0].CostWithSystem <= 0 {
		t.Errorf("year 1 cost with system = %v, expected > 0", r.Projections[0].CostWithSystem)
	}
	if !r.KPIs.NPV.Present() {
		t.Error("NPV should be present")
	}
	if r.KPIs.IRR.Present() {
		t.Errorf("IRR = %v, expected absent without a sign change", r.KPIs.IRR)
	}
	if r.KPIs.ROI.Present() {
		t.Errorf("ROI = %v, expected absent in PPA mode", r.KPIs.ROI)
	}
	if got, ok := r.KPIs.SimplePayback.Get(); !ok || got != 0 {
		t.Errorf("simple payback = %v, expected 0", r.KPIs.SimplePayback)
	}
}

func TestLifetimeBoundaries(t *testing.T) {
	for _, years := range []int{5, 40} {
		p := testutil.DirectPurchaseInputs()
		p.LifetimeYears = years
		if err := p.Validate(); err != nil {
			t.Fatalf("lifetime %d should be valid: %v", years, err)
		}

		r := calculator.Calculate(nil, p)
		if len(r.Cashflow) != years+1 {
			t.Errorf("lifetime %d: cashflow length = %d", years, len(r.Cashflow))
		}
		if len(r.Projections) != years {
			t.Errorf("lifetime %d: projection count = %d", years, len(r.Projections))
		}
		if v, ok := r.KPIs.NPV.Get(); !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("lifetime %d: NPV = %v", years, r.KPIs.NPV)
		}
	}
}

func TestZeroIrradiation(t *testing.T) {
	p := testutil.DirectPurchaseInputs()
	p.IrradiationProfile = make([]float64, 12)

	r := calculator.Calculate(nil, p)
	for _, proj := range r.Projections {
		if proj.EnergyKWh != 0 {
			t.Fatalf("year %d generation = %v, expected 0", proj.Year, proj.EnergyKWh)
		}
	}
	if r.KPIs.LCOE.Present() {
		t.Errorf("LCOE = %v, expected absent with zero generation", r.KPIs.LCOE)
	}
	if r.LifetimeGenerationKWh != 0 {
		t.Errorf("lifetime generation = %v, expected 0", r.LifetimeGenerationKWh)
	}
	if !r.KPIs.NPV.Present() {
		t.Error("NPV should not be affected by zero generation")
	}
}

func TestSavingsAndDegradationInvariants(t *testing.T) {
	for _, p := range []params.Params{testutil.DirectPurchaseInputs(), testutil.PPAInputs()} {
		r := calculator.Calculate(nil, p)
		total := 0.0
		for _, proj := range r.Projections {
			total += proj.EnergyKWh
		}
		if math.Abs(total-r.LifetimeGenerationKWh) > 1e-6 {
			t.Errorf("%s lifetime generation = %v, expected the yearly sum %v", p.Mode, r.LifetimeGenerationKWh, total)
		}
		for i, proj := range r.Projections {
			if proj.Savings < 0 {
				t.Errorf("%s year %d savings = %v", p.Mode, proj.Year, proj.Savings)
			}
			if i > 0 && proj.DegradationFactor > r.Projections[i-1].DegradationFactor {
				t.Errorf("%s year %d degradation increased", p.Mode, proj.Year)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	first := calculator.Calculate(nil, testutil.DirectPurchaseInputs())
	second := calculator.Calculate(nil, testutil.DirectPurchaseInputs())
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different results")
	}

	other := testutil.DirectPurchaseInputs()
	other.AnnualOpex++
	if calculator.Calculate(nil, other).ID == first.ID {
		t.Error("different inputs produced the same result ID")
	}
}

func TestConcurrentCalculations(t *testing.T) {
	expected := calculator.Calculate(nil, testutil.PPAInputs())

	var wg sync.WaitGroup
	results := make([]calculator.Result, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = calculator.Calculate(nil, testutil.PPAInputs())
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if !reflect.DeepEqual(r, expected) {
			t.Errorf("concurrent result %d differs", i)
		}
	}
}

func TestInputsNotMutated(t *testing.T) {
	p := testutil.DirectPurchaseInputs()
	p.Mode = "capex"
	p.IrradiationProfile = []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}

	r := calculator.Calculate(nil, p)
	if p.Mode != "capex" {
		t.Errorf("caller mode changed to %q", p.Mode)
	}
	if r.Inputs.Mode != params.ModeDirectPurchase {
		t.Errorf("result inputs mode = %q, expected canonical", r.Inputs.Mode)
	}
	r.Inputs.IrradiationProfile[0] = 9
	if p.IrradiationProfile[0] != 1 {
		t.Error("result shares the caller's irradiation profile")
	}
}

func TestAdvisoryIssuesDoNotAbort(t *testing.T) {
	p := testutil.DirectPurchaseInputs()
	p.PerformanceRatio = 0.4
	p.CapitalCost = nil

	r := calculator.Calculate(nil, p)
	if !validation.HasErrors(r.Issues) {
		t.Errorf("expected an error issue for missing capital, got %v", r.Issues)
	}
	if len(r.Cashflow) != 21 {
		t.Errorf("calculation should still complete, cashflow length = %d", len(r.Cashflow))
	}
	if r.Cashflow[0].Flow != 0 {
		t.Errorf("year 0 flow = %v, expected 0 without a capital cost", r.Cashflow[0].Flow)
	}
	if r.KPIs.ROI.Present() {
		t.Errorf("ROI = %v, expected absent without a capital cost", r.KPIs.ROI)
	}
}

func TestCalculateLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	calculator.Calculate(zap.New(core), testutil.DirectPurchaseInputs())

	entries := logs.FilterField(zap.String("op", "calculator.Calculate")).All()
	if len(entries) != 1 {
		t.Fatalf("expected one calculator log entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["years"] != int64(20) {
		t.Errorf("logged years = %v, expected 20", entries[0].ContextMap()["years"])
	}
}

func TestCalculateScenarios(t *testing.T) {
	conf, err := config.LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	results, err := calculator.CalculateScenarios(nil, *conf)
	if err != nil {
		t.Fatalf("CalculateScenarios() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 active scenario results, got %d", len(results))
	}

	direct := testutil.FindScenario(results, "Direct purchase")
	if direct == nil {
		t.Fatal("direct purchase scenario missing")
	}
	if direct.Result.Cashflow[0].Flow != -12_000_000 {
		t.Errorf("direct purchase year 0 flow = %v", direct.Result.Cashflow[0].Flow)
	}

	ppa := testutil.FindScenario(results, "PPA")
	if ppa == nil {
		t.Fatal("PPA scenario missing")
	}
	if ppa.Result.Cashflow[0].Flow != 0 {
		t.Errorf("PPA year 0 flow = %v", ppa.Result.Cashflow[0].Flow)
	}

	if testutil.FindScenario(results, "Flat summer") != nil {
		t.Error("inactive scenario should be skipped")
	}
}

func TestCalculateScenariosRejectsInvalid(t *testing.T) {
	conf := config.Configuration{Scenarios: []config.Scenario{
		{Name: "Broken", Active: true, Params: params.Default()},
	}}
	if _, err := calculator.CalculateScenarios(nil, conf); err == nil {
		t.Error("CalculateScenarios() expected an error for invalid parameters")
	}
}
