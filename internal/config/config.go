// Package config defines the data structures related to configuration and
// includes functions for loading, validating and updating it.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/venture-forecast/pkg/constants"
	"github.com/spf13/viper"
)

// DateTimeLayout is the format expected for the project start date and is
// also the output period format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for venture-forecast.
type Configuration struct {
	Project     ProjectConfiguration `mapstructure:"project" yaml:"project" json:"project"`
	Incremental *IncrementalConfig   `mapstructure:"incremental" yaml:"incremental,omitempty" json:"incremental,omitempty"`
	GoalSeek    []GoalSeekConfig     `mapstructure:"goalSeek" yaml:"goalSeek,omitempty" json:"goalSeek,omitempty"`
	Logging     LoggingConfig        `mapstructure:"logging" yaml:"logging,omitempty" json:"logging,omitempty"`
	Output      OutputConfig         `mapstructure:"output" yaml:"output,omitempty" json:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty" json:"level,omitempty"`                // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty" json:"format,omitempty"`             // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty" json:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format       string       `mapstructure:"format" yaml:"format,omitempty" json:"format,omitempty"` // pretty, csv, json, xlsx
	File         string       `mapstructure:"file" yaml:"file,omitempty" json:"file,omitempty"`
	DurationUnit DurationUnit `mapstructure:"durationUnit" yaml:"durationUnit,omitempty" json:"durationUnit,omitempty"`
}

// IncrementalConfig selects one investment (optionally financed by one loan)
// for incremental analysis.
type IncrementalConfig struct {
	InvestmentID     string  `mapstructure:"investmentId" yaml:"investmentId,omitempty" json:"investmentId,omitempty"`
	LoanID           string  `mapstructure:"loanId" yaml:"loanId,omitempty" json:"loanId,omitempty"`
	ImpactPercentage float64 `mapstructure:"impactPercentage" yaml:"impactPercentage" json:"impactPercentage"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ResolveDurationUnit returns the configured duration unit, or years when none is set.
func (c *Configuration) ResolveDurationUnit() DurationUnit {
	if c.Output.DurationUnit == "" {
		return DurationYears
	}
	return c.Output.DurationUnit
}
