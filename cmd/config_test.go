package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmi-tools/fmucheck/fmi"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fmucheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadCheckConfig_Defaults(t *testing.T) {
	cfg, err := loadCheckConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCheckConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadCheckConfig_YAML(t *testing.T) {
	// GIVEN a config file overriding the window and adding a fault
	path := writeConfig(t, `
model: dahlquist
params:
  k: 0.5
stop_time: 4
step_size: 0.25
format: none
fault:
  step_status: warning
  step_status_from: 1
`)

	// WHEN it is loaded
	cfg, err := loadCheckConfig(path)

	// THEN file values replace defaults and untouched defaults remain
	require.NoError(t, err)
	assert.Equal(t, "dahlquist", cfg.Model)
	assert.Equal(t, map[string]float64{"k": 0.5}, cfg.Params)
	assert.Equal(t, 4.0, cfg.StopTime)
	assert.Equal(t, 0.25, cfg.StepSize)
	assert.Equal(t, 500, cfg.NumSteps)
	assert.Equal(t, FormatNone, cfg.Format)
	assert.Equal(t, "warning", cfg.Fault.StepStatus)

	opts, err := cfg.slaveOptions()
	require.NoError(t, err)
	assert.Equal(t, fmi.StatusWarning, opts.StepStatus)
	assert.Equal(t, 1.0, opts.StepStatusFrom)
}

func TestLoadCheckConfig_UnknownKeyRejected(t *testing.T) {
	path := writeConfig(t, "model: stair\nstep_sise: 0.1\n")

	_, err := loadCheckConfig(path)

	assert.ErrorContains(t, err, "step_sise")
}

func TestLoadCheckConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "model: stair\nstop_time: 4\n")
	t.Setenv("FMUCHECK_STOP_TIME", "7")
	t.Setenv("FMUCHECK_FAULT_KIND", "cs_tool")

	cfg, err := loadCheckConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "stair", cfg.Model)
	assert.Equal(t, 7.0, cfg.StopTime)
	assert.Equal(t, "cs_tool", cfg.Fault.Kind)
}

func TestLoadCheckConfig_MissingFile(t *testing.T) {
	_, err := loadCheckConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestApplyFlags_OnlyChangedFlagsWin(t *testing.T) {
	saved := flagConfig
	t.Cleanup(func() { flagConfig = saved })

	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	fs.Float64Var(&flagConfig.StopTime, "stop-time", 0, "")
	fs.IntVar(&flagConfig.NumSteps, "num-steps", 500, "")
	require.NoError(t, fs.Parse([]string{"--stop-time", "3"}))

	cfg := CheckConfig{StopTime: 9, NumSteps: 42}
	applyFlags(fs, &cfg)

	assert.Equal(t, 3.0, cfg.StopTime)
	assert.Equal(t, 42, cfg.NumSteps, "unset flags keep file/env values")
}

func TestCheckConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CheckConfig)
	}{
		{"unknown model", func(c *CheckConfig) { c.Model = "bouncingball" }},
		{"unknown format", func(c *CheckConfig) { c.Format = "parquet" }},
		{"csv without output", func(c *CheckConfig) { c.Output = "" }},
		{"multi-character separator", func(c *CheckConfig) { c.Separator = "||" }},
		{"bad log level", func(c *CheckConfig) { c.LogLevel = "loud" }},
		{"bad fault kind", func(c *CheckConfig) { c.Fault.Kind = "hybrid" }},
		{"bad fault status", func(c *CheckConfig) { c.Fault.InitStatus = "meh" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCheckConfig()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
