// Package pricing computes what the customer pays in a year once the PV
// system is in place, for each supported financing mode.
package pricing

import (
	"math"

	"github.com/iwvelando/pv-viability/pkg/mathutil"
	"github.com/iwvelando/pv-viability/pkg/params"
)

// Strategy is the pricing rule for one financing mode. The set of modes is
// closed; YearCost is the single dispatch point.
type Strategy struct {
	mode            params.Mode
	ppaInitialPrice float64
	ppaEscalator    float64
}

// New selects the strategy for the financing mode in p. Anything other than
// PPA prices as a direct purchase.
func New(p params.Params) Strategy {
	if p.Mode.IsPPA() {
		return Strategy{
			mode:            params.ModePPA,
			ppaInitialPrice: params.Value(p.PPAInitialPrice),
			ppaEscalator:    p.PPAEscalator,
		}
	}
	return Strategy{mode: params.ModeDirectPurchase}
}

// Mode returns the financing mode this strategy prices.
func (s Strategy) Mode() params.Mode {
	return s.mode
}

// PPAPrice returns the escalated PPA unit price for the 0-based year index,
// or 0 outside PPA mode.
func (s Strategy) PPAPrice(year int) float64 {
	if s.mode != params.ModePPA {
		return 0
	}
	return mathutil.Compound(s.ppaInitialPrice, s.ppaEscalator, year)
}

// YearCost returns the cost with the system for the 0-based year index.
// Direct purchase pays only operating cost; the capital outlay belongs to
// year 0 of the cashflow. PPA pays the escalated unit price per generated kWh
// plus operating cost. The baseline cost is part of the contract but unused
// by both current modes.
func (s Strategy) YearCost(year int, kwhGenerated, opex, baseline float64) float64 {
	switch s.mode {
	case params.ModePPA:
		return s.PPAPrice(year)*kwhGenerated + math.Max(opex, 0)
	default:
		return math.Max(opex, 0)
	}
}
