// Package finance provides the discounted-cashflow primitives behind the
// project KPIs: net present value, internal rate of return and payback.
package finance

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/pv-viability/pkg/constants"
	"github.com/iwvelando/pv-viability/pkg/mathutil"
)

var (
	// ErrTooFewFlows is returned by IRR when fewer than two flows are given.
	ErrTooFewFlows = errors.New("at least two cashflow entries are required")
	// ErrNoSignChange is returned by IRR when NPV never changes sign over the
	// searched rate range, so no root exists there.
	ErrNoSignChange = errors.New("cashflow NPV has no sign change in the searched rate range")
	// ErrNoConvergence is returned when bisection exhausts its iterations.
	ErrNoConvergence = errors.New("rate search did not converge")
	// ErrNonFinite is returned when an intermediate value is NaN or infinite.
	ErrNonFinite = errors.New("non-finite value")
)

// NPV discounts flows at rate with the first entry at t=0 (undiscounted).
// The result may be non-finite for rates at or below -1; callers decide how
// to present that.
func NPV(rate float64, flows []float64) float64 {
	total := 0.0
	for t, f := range flows {
		total += mathutil.Discount(f, rate, t)
	}
	return total
}

type bracket struct {
	lo, hi float64
	fLo    float64
	exact  bool
}

func (b bracket) distance() float64 {
	if b.exact {
		return math.Abs(b.lo)
	}
	return math.Abs((b.lo + b.hi) / 2)
}

// IRR returns the rate at which NPV of flows is zero. The rate range
// [IRRLowerBound, IRRUpperBound] is scanned for sign changes and, when several
// roots exist, the one closest to zero is refined by bisection.
func IRR(flows []float64) (float64, error) {
	if len(flows) < 2 {
		return 0, ErrTooFewFlows
	}

	best, ok := scan(flows)
	if !ok {
		return 0, ErrNoSignChange
	}
	if best.exact {
		return best.lo, nil
	}

	rate, err := bisect(flows, best)
	if err != nil {
		return 0, fmt.Errorf("refining bracket [%g, %g]: %w", best.lo, best.hi, err)
	}
	return rate, nil
}

func scan(flows []float64) (bracket, bool) {
	var best bracket
	found := false
	consider := func(b bracket) {
		if !found || b.distance() < best.distance() {
			best = b
			found = true
		}
	}

	steps := int(math.Round((constants.IRRUpperBound - constants.IRRLowerBound) / constants.IRRScanStep))
	lo := constants.IRRLowerBound
	fLo := NPV(lo, flows)
	for i := 1; i <= steps; i++ {
		hi := constants.IRRLowerBound + float64(i)*constants.IRRScanStep
		fHi := NPV(hi, flows)

		if mathutil.IsFinite(fLo) && mathutil.IsFinite(fHi) {
			switch {
			case fLo == 0:
				consider(bracket{lo: lo, hi: lo, exact: true})
			case fHi != 0 && math.Signbit(fLo) != math.Signbit(fHi):
				consider(bracket{lo: lo, hi: hi, fLo: fLo})
			}
		}
		lo, fLo = hi, fHi
	}
	if fLo == 0 {
		consider(bracket{lo: lo, hi: lo, exact: true})
	}
	return best, found
}

func bisect(flows []float64, b bracket) (float64, error) {
	lo, hi, fLo := b.lo, b.hi, b.fLo
	for i := 0; i < constants.IRRMaxIterations; i++ {
		mid := (lo + hi) / 2
		fMid := NPV(mid, flows)
		if !mathutil.IsFinite(fMid) {
			return 0, ErrNonFinite
		}
		if fMid == 0 || (hi-lo)/2 < constants.IRRTolerance {
			return mid, nil
		}
		if math.Signbit(fLo) != math.Signbit(fMid) {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}
	return 0, ErrNoConvergence
}

// Payback returns the first index at which the running sum of flows is
// non-negative. The second result is false when that never happens.
func Payback(flows []float64) (int, bool) {
	running := 0.0
	for i, f := range flows {
		running += f
		if running >= 0 {
			return i, true
		}
	}
	return 0, false
}
