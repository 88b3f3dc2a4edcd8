package fmi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind_RoundTripsNames(t *testing.T) {
	for _, k := range []Kind{KindModelExchange, KindCoSimulationStandalone, KindCoSimulationTool} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
}

func TestParseKind_CaseInsensitive(t *testing.T) {
	got, err := ParseKind("  CS_Tool ")
	require.NoError(t, err)
	assert.Equal(t, KindCoSimulationTool, got)
}

func TestParseKind_Unknown(t *testing.T) {
	_, err := ParseKind("hybrid")
	assert.Error(t, err)
}

func TestDefaultExperiment_Fallbacks(t *testing.T) {
	// GIVEN an experiment with nothing declared
	var d DefaultExperiment

	// THEN start falls back to the caller's value and stop to the FMI default
	assert.Equal(t, 2.5, d.Start(2.5))
	assert.Equal(t, DefaultStopTime, d.Stop())

	d = DefaultExperiment{StartTime: 1, StopTime: 3, StartDefined: true, StopDefined: true}
	assert.Equal(t, 1.0, d.Start(2.5))
	assert.Equal(t, 3.0, d.Stop())
}
