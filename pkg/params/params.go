// Package params defines the input model for a PV viability calculation: the
// customer's billing facts, the proposed system, and the financing terms.
package params

import (
	"fmt"
	"strings"

	"github.com/iwvelando/pv-viability/pkg/constants"
)

// Mode is the financing mode of the project.
type Mode string

const (
	// ModeDirectPurchase means the customer buys the system up front.
	ModeDirectPurchase Mode = "direct-purchase"

	// ModePPA means the customer pays per generated kWh under a
	// power-purchase agreement and owns nothing.
	ModePPA Mode = "PPA"
)

// ParseMode accepts the canonical names plus the "CAPEX" alias, ignoring case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "direct-purchase", "direct_purchase", "directpurchase", "capex":
		return ModeDirectPurchase, nil
	case "ppa":
		return ModePPA, nil
	}
	return "", fmt.Errorf("unknown financing mode %q (expected %s or %s)", s, ModeDirectPurchase, ModePPA)
}

// Canonical maps aliases onto the canonical mode names. Unknown modes are
// returned unchanged.
func (m Mode) Canonical() Mode {
	if parsed, err := ParseMode(string(m)); err == nil {
		return parsed
	}
	return m
}

// IsPPA reports whether m names the power-purchase agreement mode.
func (m Mode) IsPPA() bool {
	return m.Canonical() == ModePPA
}

// IsDirectPurchase reports whether m names the direct purchase mode.
func (m Mode) IsDirectPurchase() bool {
	return m.Canonical() == ModeDirectPurchase
}

// TariffCategories lists the accepted billing tariff categories.
var TariffCategories = []string{"OM", "HM", "PDBT", "GDMTH", "Otro"}

// Currencies lists the accepted currency labels. Amounts are never converted.
var Currencies = []string{"MXN", "USD", "EUR"}

// Params holds every input of one calculation. Optional facts are pointers so
// that "not supplied" is distinguishable from zero.
type Params struct {
	// Billing facts
	MonthlyConsumptionKWh *float64 `json:"monthlyConsumptionKWh,omitempty" yaml:"monthlyConsumptionKWh,omitempty" mapstructure:"monthlyConsumptionKWh"`
	ContractedDemandKW    *float64 `json:"contractedDemandKW,omitempty" yaml:"contractedDemandKW,omitempty" mapstructure:"contractedDemandKW"`
	EnergyPrice           *float64 `json:"energyPrice,omitempty" yaml:"energyPrice,omitempty" mapstructure:"energyPrice"`
	DemandPrice           *float64 `json:"demandPrice,omitempty" yaml:"demandPrice,omitempty" mapstructure:"demandPrice"`
	TariffCategory        string   `json:"tariffCategory" yaml:"tariffCategory" mapstructure:"tariffCategory"`
	CurrentTotalCost      *float64 `json:"currentTotalCost,omitempty" yaml:"currentTotalCost,omitempty" mapstructure:"currentTotalCost"`
	BilledDays            *int     `json:"billedDays,omitempty" yaml:"billedDays,omitempty" mapstructure:"billedDays"`
	BillingPeriod         string   `json:"billingPeriod,omitempty" yaml:"billingPeriod,omitempty" mapstructure:"billingPeriod"`

	// System facts
	CapacityKWp        float64   `json:"capacityKWp" yaml:"capacityKWp" mapstructure:"capacityKWp"`
	PerformanceRatio   float64   `json:"performanceRatio" yaml:"performanceRatio" mapstructure:"performanceRatio"`
	DegradationRate    float64   `json:"degradationRate" yaml:"degradationRate" mapstructure:"degradationRate"`
	IrradiationProfile []float64 `json:"irradiationProfile,omitempty" yaml:"irradiationProfile,omitempty" mapstructure:"irradiationProfile"`

	// Financial facts
	Mode             Mode     `json:"mode" yaml:"mode" mapstructure:"mode"`
	CapitalCost      *float64 `json:"capitalCost,omitempty" yaml:"capitalCost,omitempty" mapstructure:"capitalCost"`
	AnnualOpex       float64  `json:"annualOpex" yaml:"annualOpex" mapstructure:"annualOpex"`
	LifetimeYears    int      `json:"lifetimeYears" yaml:"lifetimeYears" mapstructure:"lifetimeYears"`
	DiscountRate     float64  `json:"discountRate" yaml:"discountRate" mapstructure:"discountRate"`
	OMInflation      float64  `json:"omInflation" yaml:"omInflation" mapstructure:"omInflation"`
	TariffEscalation float64  `json:"tariffEscalation" yaml:"tariffEscalation" mapstructure:"tariffEscalation"`
	PPAInitialPrice  *float64 `json:"ppaInitialPrice,omitempty" yaml:"ppaInitialPrice,omitempty" mapstructure:"ppaInitialPrice"`
	PPAEscalator     float64  `json:"ppaEscalator" yaml:"ppaEscalator" mapstructure:"ppaEscalator"`
	Currency         string   `json:"currency" yaml:"currency" mapstructure:"currency"`
}

// Default returns Params populated with the documented defaults. Capacity and
// the billing facts have no default.
func Default() Params {
	return Params{
		TariffCategory:   constants.DefaultTariffCategory,
		PerformanceRatio: constants.DefaultPerformanceRatio,
		DegradationRate:  constants.DefaultDegradationRate,
		Mode:             ModeDirectPurchase,
		LifetimeYears:    constants.DefaultLifetimeYears,
		DiscountRate:     constants.DefaultDiscountRate,
		OMInflation:      constants.DefaultOMInflation,
		TariffEscalation: constants.DefaultTariffEscalation,
		PPAEscalator:     constants.DefaultPPAEscalator,
		Currency:         constants.DefaultCurrency,
	}
}

// Normalize canonicalizes labels in place: mode aliases, currency case.
func (p *Params) Normalize() {
	p.Mode = p.Mode.Canonical()
	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	p.TariffCategory = strings.TrimSpace(p.TariffCategory)
}

// Clone returns a deep copy so that callers can hold Params immutably.
func (p Params) Clone() Params {
	c := p
	c.MonthlyConsumptionKWh = cloneFloat(p.MonthlyConsumptionKWh)
	c.ContractedDemandKW = cloneFloat(p.ContractedDemandKW)
	c.EnergyPrice = cloneFloat(p.EnergyPrice)
	c.DemandPrice = cloneFloat(p.DemandPrice)
	c.CurrentTotalCost = cloneFloat(p.CurrentTotalCost)
	c.CapitalCost = cloneFloat(p.CapitalCost)
	c.PPAInitialPrice = cloneFloat(p.PPAInitialPrice)
	if p.BilledDays != nil {
		d := *p.BilledDays
		c.BilledDays = &d
	}
	if p.IrradiationProfile != nil {
		c.IrradiationProfile = append([]float64(nil), p.IrradiationProfile...)
	}
	return c
}

// Profile returns the irradiation profile to use, falling back to the
// built-in seasonal curve when none was supplied.
func (p Params) Profile() []float64 {
	if len(p.IrradiationProfile) == 0 {
		return append([]float64(nil), constants.DefaultIrradiationProfile[:]...)
	}
	return append([]float64(nil), p.IrradiationProfile...)
}

// AnnualConsumptionKWh returns twelve times the monthly consumption, or 0.
func (p Params) AnnualConsumptionKWh() float64 {
	return Value(p.MonthlyConsumptionKWh) * constants.MonthsPerYear
}

// Value dereferences an optional amount, treating nil as 0.
func Value(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Float returns a pointer to v, for building Params literals.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v, for building Params literals.
func Int(v int) *int {
	return &v
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
