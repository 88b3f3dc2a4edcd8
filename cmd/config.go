package cmd

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/fmi-tools/fmucheck/cosim"
	"github.com/fmi-tools/fmucheck/fmi"
	"github.com/fmi-tools/fmucheck/slave"
)

// envPrefix namespaces every environment override, e.g. FMUCHECK_STOP_TIME.
const envPrefix = "FMUCHECK_"

// Output formats accepted by --format.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
	FormatNone   = "none"
)

// CheckConfig is the full configuration of one checker run.
// All sections must be listed to satisfy KnownFields(true) strict parsing.
type CheckConfig struct {
	Model    string             `yaml:"model" env:"MODEL"`
	Location string             `yaml:"location" env:"LOCATION"`
	Params   map[string]float64 `yaml:"params"`

	StartTime float64 `yaml:"start_time" env:"START_TIME"`
	StopTime  float64 `yaml:"stop_time" env:"STOP_TIME"`
	StepSize  float64 `yaml:"step_size" env:"STEP_SIZE"`
	NumSteps  int     `yaml:"num_steps" env:"NUM_STEPS"`

	Output      string `yaml:"output" env:"OUTPUT"`
	Format      string `yaml:"format" env:"FORMAT"`
	Separator   string `yaml:"separator" env:"SEPARATOR"`
	MetricsFile string `yaml:"metrics_file" env:"METRICS_FILE"`
	Plot        string `yaml:"plot" env:"PLOT"` // output variable to chart after the run
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL"`

	Fault FaultConfig `yaml:"fault" envPrefix:"FAULT_"`
}

// FaultConfig injects misbehavior into the built-in slave so every error
// path of the driver can be reproduced from the command line.
type FaultConfig struct {
	MIMEType        string  `yaml:"mime_type" env:"MIME_TYPE"`
	Kind            string  `yaml:"kind" env:"KIND"`
	FailInstantiate bool    `yaml:"fail_instantiate" env:"FAIL_INSTANTIATE"`
	InitStatus      string  `yaml:"init_status" env:"INIT_STATUS"`
	StepStatus      string  `yaml:"step_status" env:"STEP_STATUS"`
	StepStatusFrom  float64 `yaml:"step_status_from" env:"STEP_STATUS_FROM"`
	TerminateStatus string  `yaml:"terminate_status" env:"TERMINATE_STATUS"`
}

// DefaultCheckConfig mirrors the checker's historical defaults: 500 steps
// over the FMU's default experiment, results to result.csv.
func DefaultCheckConfig() CheckConfig {
	return CheckConfig{
		Model:     "vanderpol",
		NumSteps:  500,
		Output:    "result.csv",
		Format:    FormatCSV,
		Separator: ",",
		LogLevel:  "info",
	}
}

// loadCheckConfig layers defaults, the optional YAML file and FMUCHECK_*
// environment variables, in that order. Flags are applied by the caller.
func loadCheckConfig(path string) (CheckConfig, error) {
	cfg := DefaultCheckConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		// Strict field checking: typos must cause errors
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings the session cannot check itself.
func (c CheckConfig) Validate() error {
	if _, ok := slave.Describe(c.Model); !ok {
		return fmt.Errorf("unknown model %q (available: %v)", c.Model, slave.Names())
	}
	switch c.Format {
	case FormatCSV, FormatSQLite:
		if c.Output == "" {
			return fmt.Errorf("format %s needs an output path", c.Format)
		}
	case FormatNone:
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	if utf8.RuneCountInString(c.Separator) != 1 {
		return fmt.Errorf("separator must be a single character, got %q", c.Separator)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if _, err := c.slaveOptions(); err != nil {
		return err
	}
	return nil
}

func (c CheckConfig) separator() rune {
	r, _ := utf8.DecodeRuneInString(c.Separator)
	return r
}

func (c CheckConfig) location() string {
	if c.Location != "" {
		return c.Location
	}
	return "builtin://" + c.Model
}

func (c CheckConfig) sessionConfig() cosim.Config {
	return cosim.Config{
		StartTime: c.StartTime,
		StopTime:  c.StopTime,
		StepSize:  c.StepSize,
		NumSteps:  c.NumSteps,
		Location:  c.location(),
	}
}

func (c CheckConfig) slaveOptions() (slave.Options, error) {
	f := c.Fault
	opts := slave.Options{
		Params:          c.Params,
		MIMEType:        f.MIMEType,
		FailInstantiate: f.FailInstantiate,
		StepStatusFrom:  f.StepStatusFrom,
	}
	if f.Kind != "" {
		kind, err := fmi.ParseKind(f.Kind)
		if err != nil {
			return opts, fmt.Errorf("fault.kind: %w", err)
		}
		opts.Kind = &kind
	}

	statuses := []struct {
		field string
		value string
		dst   *fmi.Status
	}{
		{"fault.init_status", f.InitStatus, &opts.InitStatus},
		{"fault.step_status", f.StepStatus, &opts.StepStatus},
		{"fault.terminate_status", f.TerminateStatus, &opts.TerminateStatus},
	}
	for _, s := range statuses {
		if s.value == "" {
			continue
		}
		st, err := fmi.ParseStatus(s.value)
		if err != nil {
			return opts, fmt.Errorf("%s: %w", s.field, err)
		}
		*s.dst = st
	}
	return opts, nil
}
