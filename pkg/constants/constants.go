// Package constants provides shared constants for the pv-viability application.
package constants

import "time"

// Calendar constants
const (
	// BillingPeriodLayout is the year-month format of billing periods in
	// bills, config files and API payloads.
	BillingPeriodLayout = "2006-01"

	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12
)

// DefaultIrradiationProfile is the built-in normalized monthly irradiation
// curve. It sums to 12.7 units per year.
var DefaultIrradiationProfile = [MonthsPerYear]float64{
	1.0, 0.95, 1.05, 1.1, 1.15, 1.2, 1.2, 1.15, 1.05, 1.0, 0.95, 0.9,
}

// Parameter defaults
const (
	DefaultPerformanceRatio = 0.82
	DefaultDegradationRate  = 0.007
	DefaultLifetimeYears    = 25
	DefaultDiscountRate     = 0.10
	DefaultOMInflation      = 0.03
	DefaultTariffEscalation = 0.07
	DefaultPPAEscalator     = 0.02
	DefaultTariffCategory   = "OM"
	DefaultCurrency         = "MXN"
)

// Parameter bounds enforced by the schema layer
const (
	MinLifetimeYears = 5
	MaxLifetimeYears = 40

	MinBilledDays = 1
	MaxBilledDays = 45

	MaxDegradationRate = 0.03

	MinDiscountRate = -0.5
	MaxDiscountRate = 1.0

	MinEscalationRate = -0.2
	MaxEscalationRate = 0.5
)

// Advisory ranges; values outside them are flagged but still computed
const (
	TypicalPerformanceRatioMin = 0.5
	TypicalPerformanceRatioMax = 0.95
)

// IRR root finding
const (
	// IRRLowerBound is the lowest rate considered; rates at or below -100%
	// make the discount factor undefined.
	IRRLowerBound = -0.99

	// IRRUpperBound is the highest rate considered when bracketing a root.
	IRRUpperBound = 10.0

	// IRRScanStep is the grid spacing used to bracket sign changes.
	IRRScanStep = 0.01

	// IRRTolerance is the bracket width at which bisection stops.
	IRRTolerance = 1e-10

	// IRRMaxIterations caps the bisection loop.
	IRRMaxIterations = 200
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides read through viper.
	EnvPrefix = "PV_VIABILITY"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultShutdownTimeout bounds graceful shutdown of the HTTP server.
	DefaultShutdownTimeout = 10 * time.Second
)

// Formatting constants
const (
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)
