package validation

import (
	"testing"

	"github.com/iwvelando/pv-viability/pkg/params"
)

func directPurchase() params.Params {
	p := params.Default()
	p.CapacityKWp = 400
	p.CapitalCost = params.Float(12_000_000)
	p.IrradiationProfile = []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	return p
}

func fields(issues []Issue) map[string]Severity {
	out := make(map[string]Severity)
	for _, i := range issues {
		out[i.Field] = i.Severity
	}
	return out
}

func TestCheckInputs(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(p *params.Params)
		expected map[string]Severity
	}{
		{
			name:     "Clean direct purchase",
			modify:   func(p *params.Params) {},
			expected: map[string]Severity{},
		},
		{
			name:     "Zero capacity",
			modify:   func(p *params.Params) { p.CapacityKWp = 0 },
			expected: map[string]Severity{"capacityKWp": SeverityError},
		},
		{
			name:     "Low performance ratio",
			modify:   func(p *params.Params) { p.PerformanceRatio = 0.4 },
			expected: map[string]Severity{"performanceRatio": SeverityWarning},
		},
		{
			name:     "High performance ratio",
			modify:   func(p *params.Params) { p.PerformanceRatio = 0.97 },
			expected: map[string]Severity{"performanceRatio": SeverityWarning},
		},
		{
			name:     "Degradation above range",
			modify:   func(p *params.Params) { p.DegradationRate = 0.05 },
			expected: map[string]Severity{"degradationRate": SeverityWarning},
		},
		{
			name:     "Missing capital cost",
			modify:   func(p *params.Params) { p.CapitalCost = nil },
			expected: map[string]Severity{"capitalCost": SeverityError},
		},
		{
			name: "PPA without price",
			modify: func(p *params.Params) {
				p.Mode = params.ModePPA
				p.CapitalCost = nil
			},
			expected: map[string]Severity{"ppaInitialPrice": SeverityError},
		},
		{
			name: "PPA alias with price",
			modify: func(p *params.Params) {
				p.Mode = "ppa"
				p.CapitalCost = nil
				p.PPAInitialPrice = params.Float(2.2)
			},
			expected: map[string]Severity{},
		},
		{
			name:     "Default profile",
			modify:   func(p *params.Params) { p.IrradiationProfile = nil },
			expected: map[string]Severity{"irradiationProfile": SeverityInfo},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := directPurchase()
			tt.modify(&p)
			got := fields(CheckInputs(p))
			if len(got) != len(tt.expected) {
				t.Fatalf("CheckInputs() = %v, expected %v", got, tt.expected)
			}
			for field, severity := range tt.expected {
				if got[field] != severity {
					t.Errorf("issue for %s = %q, expected %q", field, got[field], severity)
				}
			}
		})
	}
}

func TestHasErrors(t *testing.T) {
	if HasErrors(nil) {
		t.Error("HasErrors(nil) = true, expected false")
	}
	if HasErrors([]Issue{{Severity: SeverityWarning}, {Severity: SeverityInfo}}) {
		t.Error("warnings and info should not count as errors")
	}
	if !HasErrors([]Issue{{Severity: SeverityWarning}, {Severity: SeverityError}}) {
		t.Error("HasErrors() = false, expected true")
	}
}

func TestIssueString(t *testing.T) {
	i := Issue{Field: "capitalCost", Message: "missing", Severity: SeverityError}
	if got := i.String(); got != "[error] capitalCost: missing" {
		t.Errorf("String() = %q", got)
	}
}

func TestConfigValidator_ValidateAll(t *testing.T) {
	bad := directPurchase()
	bad.PerformanceRatio = 0.3

	tests := []struct {
		name            string
		validator       ConfigValidator
		expectWarnCount int
	}{
		{
			name: "Valid configuration",
			validator: ConfigValidator{Scenarios: []ScenarioConfig{
				{Name: "Base", Active: true, Params: directPurchase()},
			}},
			expectWarnCount: 0,
		},
		{
			name: "Duplicate names",
			validator: ConfigValidator{Scenarios: []ScenarioConfig{
				{Name: "Base", Active: true, Params: directPurchase()},
				{Name: "Base", Active: true, Params: directPurchase()},
			}},
			expectWarnCount: 1,
		},
		{
			name: "Inactive scenarios skip input checks",
			validator: ConfigValidator{Scenarios: []ScenarioConfig{
				{Name: "Base", Active: true, Params: directPurchase()},
				{Name: "Odd", Active: false, Params: bad},
			}},
			expectWarnCount: 0,
		},
		{
			name: "Active scenario with issues",
			validator: ConfigValidator{Scenarios: []ScenarioConfig{
				{Name: "Odd", Active: true, Params: bad},
			}},
			expectWarnCount: 1,
		},
		{
			name: "Nothing active",
			validator: ConfigValidator{Scenarios: []ScenarioConfig{
				{Name: "Base", Active: false, Params: directPurchase()},
			}},
			expectWarnCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.validator.ValidateAll()
			if len(warnings) != tt.expectWarnCount {
				t.Errorf("ValidateAll() returned %d warnings, expected %d: %v", len(warnings), tt.expectWarnCount, warnings)
			}
			for _, warning := range warnings {
				t.Logf("Warning: %s", warning)
			}
		})
	}
}
