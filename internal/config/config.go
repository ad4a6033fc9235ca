// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iwvelando/moolah/pkg/configprocessor"
	"github.com/iwvelando/moolah/pkg/constants"
	"github.com/iwvelando/moolah/pkg/validation"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment variables that override configuration keys,
// e.g. MOOLAH_OUTPUT_PRECISION.
const EnvPrefix = "MOOLAH"

// Configuration holds all configuration for moolah.
type Configuration struct {
	Logging      LoggingConfig `yaml:"logging,omitempty"`
	Output       OutputConfig  `yaml:"output,omitempty"`
	Calculations []Calculation `yaml:"calculations"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format    string `yaml:"format,omitempty"`    // pretty, csv, json
	Precision int    `yaml:"precision,omitempty"` // decimal places shown
}

// Calculation names one formula evaluation. Input values hold the literal
// scalar text from the YAML source, so an unquoted number reaches the decimal
// parser exactly as written.
type Calculation struct {
	Name    string            `yaml:"name"`
	Formula string            `yaml:"formula"`
	Inputs  map[string]string `yaml:"inputs"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return load(data)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r,
// applying the same defaults and environment overrides as LoadConfiguration.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return load(data)
}

func load(data []byte) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	inputs, err := inputText(data)
	if err != nil {
		return nil, err
	}

	configuration, err := decode(v)
	if err != nil {
		return nil, err
	}

	// Viper reads unquoted numbers as float64, which drops digits beyond
	// float64 precision, so inputs come from the source text instead.
	for i := range configuration.Calculations {
		if i < len(inputs) {
			configuration.Calculations[i].Inputs = inputs[i]
		}
	}
	return configuration, nil
}

// rawInputs mirrors the calculations list with inputs left as YAML nodes.
type rawInputs struct {
	Calculations []struct {
		Inputs map[string]yaml.Node `yaml:"inputs"`
	} `yaml:"calculations"`
}

// inputText returns the scalar text of every calculation's inputs, in
// calculation order.
func inputText(data []byte) ([]map[string]string, error) {
	var raw rawInputs
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unable to decode calculation inputs, %s", err)
	}

	all := make([]map[string]string, 0, len(raw.Calculations))
	for i, calc := range raw.Calculations {
		inputs := make(map[string]string, len(calc.Inputs))
		for name, node := range calc.Inputs {
			if node.Kind == yaml.AliasNode && node.Alias != nil {
				node = *node.Alias
			}
			if node.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("calculation #%d: input %q must be a scalar value", i+1, name)
			}
			inputs[name] = node.Value
		}
		all = append(all, inputs)
	}
	return all, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.precision", constants.DefaultPrecision)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Calculations) == 0 {
		warnings = append(warnings, "No calculations configured")
	}

	if err := validation.ValidatePrecision(c.Output.Precision); err != nil {
		warnings = append(warnings, err.Error())
	}

	infos := make([]configprocessor.CalculationInfo, 0, len(c.Calculations))
	for _, calc := range c.Calculations {
		infos = append(infos, calc.ToCalculationInfo())
	}

	processor := configprocessor.NewProcessor()
	return append(warnings, processor.ValidateCalculations(infos)...)
}
