package validation

import (
	"fmt"

	"github.com/iwvelando/pv-viability/pkg/params"
)

// ConfigValidator performs cross-scenario checks on a loaded configuration.
type ConfigValidator struct {
	Scenarios []ScenarioConfig
}

// ScenarioConfig is the resolved view of one scenario.
type ScenarioConfig struct {
	Name   string
	Active bool
	Params params.Params
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	seen := make(map[string]bool)
	active := 0
	for _, scenario := range cv.Scenarios {
		if seen[scenario.Name] {
			warnings = append(warnings, fmt.Sprintf("Scenario name '%s' is used more than once", scenario.Name))
		}
		seen[scenario.Name] = true

		if !scenario.Active {
			continue
		}
		active++

		for _, issue := range CheckInputs(scenario.Params) {
			if issue.Severity == SeverityInfo {
				continue
			}
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' %s", scenario.Name, issue))
		}
	}

	if len(cv.Scenarios) > 0 && active == 0 {
		warnings = append(warnings, "No scenario is active - nothing will be calculated")
	}

	return warnings
}
