// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/iwvelando/pv-viability/pkg/constants"
	"github.com/iwvelando/pv-viability/pkg/params"
	"github.com/iwvelando/pv-viability/pkg/validation"
)

// Configuration holds all configuration for pv-viability.
type Configuration struct {
	Common    params.Params `yaml:"common" mapstructure:"common"`
	Scenarios []Scenario    `yaml:"scenarios" mapstructure:"scenarios"`
	Logging   LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Output    OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
}

// Scenario is one named variation of the common parameters. Overrides holds
// only the keys that differ; Params is the resolved result.
type Scenario struct {
	Name      string                 `yaml:"name" mapstructure:"name"`
	Active    bool                   `yaml:"active" mapstructure:"active"`
	Overrides map[string]interface{} `yaml:"overrides,omitempty" mapstructure:"overrides"`
	Params    params.Params          `yaml:"-" mapstructure:"-"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper("common.")
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper("common.")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}
	return decode(v)
}

func newViper(prefix string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	setDefaults(v, prefix)
	return v
}

func setDefaults(v *viper.Viper, prefix string) {
	d := params.Default()
	v.SetDefault(prefix+"tariffCategory", d.TariffCategory)
	v.SetDefault(prefix+"performanceRatio", d.PerformanceRatio)
	v.SetDefault(prefix+"degradationRate", d.DegradationRate)
	v.SetDefault(prefix+"mode", string(d.Mode))
	v.SetDefault(prefix+"lifetimeYears", d.LifetimeYears)
	v.SetDefault(prefix+"discountRate", d.DiscountRate)
	v.SetDefault(prefix+"omInflation", d.OMInflation)
	v.SetDefault(prefix+"tariffEscalation", d.TariffEscalation)
	v.SetDefault(prefix+"ppaEscalator", d.PPAEscalator)
	v.SetDefault(prefix+"currency", d.Currency)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	configuration.Common.Normalize()

	common := v.GetStringMap("common")
	for i := range configuration.Scenarios {
		p, err := resolve(common, configuration.Scenarios[i].Overrides)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", configuration.Scenarios[i].Name, err)
		}
		configuration.Scenarios[i].Params = p
	}

	return &configuration, nil
}

// resolve layers a scenario's overrides on top of the common parameters and
// the defaults. Nested values merge key by key; lists are replaced.
// PV_VIABILITY_<KEY> environment variables take precedence over both.
func resolve(common, overrides map[string]interface{}) (params.Params, error) {
	v := newViper("")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.MergeConfigMap(common); err != nil {
		return params.Params{}, fmt.Errorf("merging common parameters: %w", err)
	}
	if err := v.MergeConfigMap(overrides); err != nil {
		return params.Params{}, fmt.Errorf("merging overrides: %w", err)
	}

	var p params.Params
	if err := v.Unmarshal(&p); err != nil {
		return params.Params{}, fmt.Errorf("unable to decode parameters, %w", err)
	}
	p.Normalize()
	return p, nil
}

// ActiveScenarios returns the scenarios marked active, in file order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, s := range c.Scenarios {
		if s.Active {
			active = append(active, s)
		}
	}
	return active
}

// Validate applies the structural parameter checks to every active scenario
// and joins the failures.
func (c *Configuration) Validate() error {
	var errs []error
	for _, s := range c.ActiveScenarios() {
		if err := s.Params.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("scenario %q: %w", s.Name, err))
		}
	}
	return errors.Join(errs...)
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var scenarios []validation.ScenarioConfig
	for _, s := range c.Scenarios {
		scenarios = append(scenarios, validation.ScenarioConfig{
			Name:   s.Name,
			Active: s.Active,
			Params: s.Params,
		})
	}

	validator := validation.ConfigValidator{Scenarios: scenarios}
	return validator.ValidateAll()
}
