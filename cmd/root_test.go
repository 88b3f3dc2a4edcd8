package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmi-tools/fmucheck/cosim"
)

func stairConfig(t *testing.T) CheckConfig {
	t.Helper()
	cfg := DefaultCheckConfig()
	cfg.Model = "stair"
	cfg.NumSteps = 10
	cfg.Output = filepath.Join(t.TempDir(), "result.csv")
	return cfg
}

func TestRunCheck_WritesCSVAndPasses(t *testing.T) {
	// GIVEN the stair slave over [0, 10] in 10 steps
	cfg := stairConfig(t)
	var buf bytes.Buffer

	// WHEN the check runs
	out, err := runCheck(cfg, &buf)

	// THEN it passes and the CSV holds a header plus one row per step
	require.NoError(t, err)
	assert.True(t, out.OK())
	assert.Contains(t, buf.String(), "PASS")

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, "time,counter", lines[0])
	assert.Equal(t, "10,11", lines[11], "last row is at the stop time, after stepping [10, 11)")
}

func TestRunCheck_StepFailureKeepsPartialResults(t *testing.T) {
	cfg := stairConfig(t)
	cfg.Fault.StepStatus = "error"
	cfg.Fault.StepStatusFrom = 5
	var buf bytes.Buffer

	out, err := runCheck(cfg, &buf)

	assert.ErrorIs(t, err, cosim.ErrStep)
	assert.Equal(t, cosim.Error, out.Result)
	assert.Contains(t, buf.String(), "FAIL")

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 7, "header plus samples at t = 0..5")
}

func TestRunCheck_UnsupportedTransportIsSkipped(t *testing.T) {
	cfg := stairConfig(t)
	cfg.Fault.MIMEType = "application/x-fmu-remote"
	cfg.Fault.Kind = "cs_tool"
	var buf bytes.Buffer

	out, err := runCheck(cfg, &buf)

	require.NoError(t, err)
	assert.False(t, out.Simulated)
	assert.Contains(t, buf.String(), "SKIPPED")
	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr), "no result file for a skipped run")
}

func TestRunCheck_InstantiateFailure(t *testing.T) {
	cfg := stairConfig(t)
	cfg.Fault.FailInstantiate = true
	var buf bytes.Buffer

	_, err := runCheck(cfg, &buf)

	assert.ErrorIs(t, err, cosim.ErrInstantiate)
	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunCheck_SQLiteMetricsAndPlot(t *testing.T) {
	dir := t.TempDir()
	cfg := stairConfig(t)
	cfg.Format = FormatSQLite
	cfg.Output = filepath.Join(dir, "results.db")
	cfg.MetricsFile = filepath.Join(dir, "fmucheck.prom")
	cfg.Plot = "counter"
	var buf bytes.Buffer

	_, err := runCheck(cfg, &buf)
	require.NoError(t, err)

	_, err = os.Stat(cfg.Output)
	assert.NoError(t, err)
	prom, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `fmucheck_steps_total{model="stair"} 11`)
	assert.Contains(t, buf.String(), "counter")
}

func TestModelsCommand_ListsBuiltins(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"models"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	for _, name := range []string{"dahlquist", "stair", "vanderpol"} {
		assert.Contains(t, buf.String(), name)
	}
}
