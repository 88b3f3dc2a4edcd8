package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmi-tools/fmucheck/cosim"
	"github.com/fmi-tools/fmucheck/fmi"
	"github.com/fmi-tools/fmucheck/fmi/mock"
)

func TestRecorder_CountsStepsAndStatuses(t *testing.T) {
	// GIVEN a session whose FMU fails at t=0.75
	inst := &mock.Instance{
		Experiment: fmi.DefaultExperiment{StopTime: 1, StopDefined: true},
		DoStepFn: func(ts, h float64, newStep bool) fmi.Status {
			if ts >= 0.75 {
				return fmi.StatusError
			}
			return fmi.StatusOK
		},
	}
	rec := NewRecorder("mock")
	s := cosim.NewSession(cosim.Config{NumSteps: 4}, inst, nil, nil)
	s.AddObserver(rec)

	// WHEN it runs
	_, err := s.Run()
	require.Error(t, err)

	// THEN the counters reflect every step
	assert.Equal(t, 4.0, testutil.ToFloat64(rec.steps))
	assert.Equal(t, 3.0, testutil.ToFloat64(rec.stepStatus.WithLabelValues("fmiOK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.stepStatus.WithLabelValues("fmiError")))
	assert.Equal(t, 0.75, testutil.ToFloat64(rec.simTime))
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.runSuccess))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.simulated))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	rec := NewRecorder("stair")
	rec.OnStep(0, fmi.StatusOK)
	rec.OnFinish(cosim.Outcome{Result: cosim.Success, Simulated: true})

	path := filepath.Join(t.TempDir(), "fmucheck.prom")
	require.NoError(t, rec.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `fmucheck_steps_total{model="stair"} 1`)
	assert.Contains(t, string(data), `fmucheck_run_success{model="stair"} 1`)
}

func TestRecorder_MissingDirectory(t *testing.T) {
	rec := NewRecorder("stair")
	assert.Error(t, rec.WriteTextfile(filepath.Join(t.TempDir(), "nope", "x.prom")))
}
