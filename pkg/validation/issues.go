package validation

import (
	"fmt"

	"github.com/iwvelando/pv-viability/pkg/constants"
	"github.com/iwvelando/pv-viability/pkg/params"
)

// Severity classifies an advisory issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is an advisory finding about calculation inputs. Issues never stop a
// calculation; an error-severity issue means the results are unlikely to be
// meaningful.
type Issue struct {
	Field    string   `json:"field" yaml:"field"`
	Message  string   `json:"message" yaml:"message"`
	Severity Severity `json:"severity" yaml:"severity"`
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Field, i.Message)
}

// CheckInputs collects advisory issues for p. It assumes p already passed
// params.Validate, but tolerates inputs that did not.
func CheckInputs(p params.Params) []Issue {
	var issues []Issue
	add := func(field string, severity Severity, format string, args ...interface{}) {
		issues = append(issues, Issue{Field: field, Message: fmt.Sprintf(format, args...), Severity: severity})
	}

	if p.CapacityKWp <= 0 {
		add("capacityKWp", SeverityError, "system capacity must be greater than 0, got %g", p.CapacityKWp)
	}
	if p.PerformanceRatio < constants.TypicalPerformanceRatioMin || p.PerformanceRatio > constants.TypicalPerformanceRatioMax {
		add("performanceRatio", SeverityWarning, "performance ratio %g is outside the typical range [%g, %g]",
			p.PerformanceRatio, constants.TypicalPerformanceRatioMin, constants.TypicalPerformanceRatioMax)
	}
	if p.DegradationRate < 0 || p.DegradationRate > constants.MaxDegradationRate {
		add("degradationRate", SeverityWarning, "degradation rate %g is outside the typical range [0, %g]",
			p.DegradationRate, constants.MaxDegradationRate)
	}

	mode := p.Mode.Canonical()
	if mode.IsDirectPurchase() && params.Value(p.CapitalCost) <= 0 {
		add("capitalCost", SeverityError, "direct purchase requires a positive capital cost")
	}
	if mode.IsPPA() && params.Value(p.PPAInitialPrice) <= 0 {
		add("ppaInitialPrice", SeverityError, "PPA mode requires a positive initial PPA price")
	}

	if len(p.IrradiationProfile) == 0 {
		add("irradiationProfile", SeverityInfo, "no irradiation profile supplied, default seasonal profile used")
	}

	return issues
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}
