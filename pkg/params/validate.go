package params

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/iwvelando/pv-viability/pkg/constants"
	"github.com/iwvelando/pv-viability/pkg/datetime"
	"golang.org/x/text/currency"
)

// bound is a declarative numeric constraint on one field. Optional fields
// report ok=false when absent and are then skipped.
type bound struct {
	field    string
	value    func(p Params) (v float64, ok bool)
	min, max float64
	openMin  bool
	openMax  bool
}

func required(get func(p Params) float64) func(p Params) (float64, bool) {
	return func(p Params) (float64, bool) { return get(p), true }
}

func optionalFloat(get func(p Params) *float64) func(p Params) (float64, bool) {
	return func(p Params) (float64, bool) {
		v := get(p)
		if v == nil {
			return 0, false
		}
		return *v, true
	}
}

var inf = math.Inf(1)

var bounds = []bound{
	{field: "monthlyConsumptionKWh", value: optionalFloat(func(p Params) *float64 { return p.MonthlyConsumptionKWh }), min: 0, max: inf},
	{field: "contractedDemandKW", value: optionalFloat(func(p Params) *float64 { return p.ContractedDemandKW }), min: 0, max: inf},
	{field: "energyPrice", value: optionalFloat(func(p Params) *float64 { return p.EnergyPrice }), min: 0, max: inf},
	{field: "demandPrice", value: optionalFloat(func(p Params) *float64 { return p.DemandPrice }), min: 0, max: inf},
	{field: "currentTotalCost", value: optionalFloat(func(p Params) *float64 { return p.CurrentTotalCost }), min: 0, max: inf},
	{field: "billedDays", value: func(p Params) (float64, bool) {
		if p.BilledDays == nil {
			return 0, false
		}
		return float64(*p.BilledDays), true
	}, min: constants.MinBilledDays, max: constants.MaxBilledDays},
	{field: "capacityKWp", value: required(func(p Params) float64 { return p.CapacityKWp }), min: 0, max: inf, openMin: true},
	{field: "performanceRatio", value: required(func(p Params) float64 { return p.PerformanceRatio }), min: 0, max: 1, openMin: true, openMax: true},
	{field: "degradationRate", value: required(func(p Params) float64 { return p.DegradationRate }), min: 0, max: constants.MaxDegradationRate},
	{field: "capitalCost", value: optionalFloat(func(p Params) *float64 { return p.CapitalCost }), min: 0, max: inf},
	{field: "annualOpex", value: required(func(p Params) float64 { return p.AnnualOpex }), min: 0, max: inf},
	{field: "lifetimeYears", value: required(func(p Params) float64 { return float64(p.LifetimeYears) }), min: constants.MinLifetimeYears, max: constants.MaxLifetimeYears},
	{field: "discountRate", value: required(func(p Params) float64 { return p.DiscountRate }), min: constants.MinDiscountRate, max: constants.MaxDiscountRate},
	{field: "omInflation", value: required(func(p Params) float64 { return p.OMInflation }), min: constants.MinEscalationRate, max: constants.MaxEscalationRate},
	{field: "tariffEscalation", value: required(func(p Params) float64 { return p.TariffEscalation }), min: constants.MinEscalationRate, max: constants.MaxEscalationRate},
	{field: "ppaInitialPrice", value: optionalFloat(func(p Params) *float64 { return p.PPAInitialPrice }), min: 0, max: inf},
	{field: "ppaEscalator", value: required(func(p Params) float64 { return p.PPAEscalator }), min: constants.MinEscalationRate, max: constants.MaxEscalationRate},
}

func (b bound) check(p Params) error {
	v, ok := b.value(p)
	if !ok {
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s: must be a finite number", b.field)
	}
	below := v < b.min || (b.openMin && v == b.min)
	above := v > b.max || (b.openMax && v == b.max)
	if below || above {
		return fmt.Errorf("%s: %v is outside %s", b.field, v, b.describe())
	}
	return nil
}

func (b bound) describe() string {
	lo, hi := "[", "]"
	if b.openMin {
		lo = "("
	}
	if b.openMax {
		hi = ")"
	}
	if math.IsInf(b.max, 1) {
		return fmt.Sprintf("%s%v, +inf)", lo, b.min)
	}
	return fmt.Sprintf("%s%v, %v%s", lo, b.min, b.max, hi)
}

// Validate applies the structural constraints every calculation relies on and
// returns all violations joined into one error. It does not normalize p;
// call Normalize first when labels may carry aliases.
func (p Params) Validate() error {
	var errs []error
	for _, b := range bounds {
		if err := b.check(p); err != nil {
			errs = append(errs, err)
		}
	}

	if _, err := ParseMode(string(p.Mode)); err != nil {
		errs = append(errs, fmt.Errorf("mode: %w", err))
	}
	if p.Mode.IsDirectPurchase() && Value(p.CapitalCost) <= 0 {
		errs = append(errs, fmt.Errorf("capitalCost: a positive capital cost is required in %s mode", ModeDirectPurchase))
	}

	if !slices.Contains(TariffCategories, p.TariffCategory) {
		errs = append(errs, fmt.Errorf("tariffCategory: %q is not one of %v", p.TariffCategory, TariffCategories))
	}
	if err := validateCurrency(p.Currency); err != nil {
		errs = append(errs, err)
	}
	if p.BillingPeriod != "" {
		if _, err := datetime.ParsePeriod(p.BillingPeriod); err != nil {
			errs = append(errs, fmt.Errorf("billingPeriod: %w", err))
		}
	}

	if p.IrradiationProfile != nil {
		if len(p.IrradiationProfile) != constants.MonthsPerYear {
			errs = append(errs, fmt.Errorf("irradiationProfile: expected %d monthly values, got %d",
				constants.MonthsPerYear, len(p.IrradiationProfile)))
		}
		for i, v := range p.IrradiationProfile {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				errs = append(errs, fmt.Errorf("irradiationProfile[%d]: %v must be a finite non-negative number", i, v))
			}
		}
	}

	return errors.Join(errs...)
}

func validateCurrency(code string) error {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Errorf("currency: %w", err)
	}
	if !slices.Contains(Currencies, unit.String()) {
		return fmt.Errorf("currency: %s is not one of %v", unit, Currencies)
	}
	return nil
}
