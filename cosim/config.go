package cosim

import (
	"errors"
	"fmt"
	"math"

	"github.com/fmi-tools/fmucheck/fmi"
)

// DefaultInstanceName is the name the checker gives every slave it instantiates.
const DefaultInstanceName = "Test FMI 1.0 CS"

// clampTolerance is the fraction of a step within which the clock is snapped
// onto the stop time, so the last sample lands exactly on it.
const clampTolerance = 1e-3

// Config is the read-only session setup supplied by the CLI or config loader.
type Config struct {
	// StartTime is used only when the FMU declares no default start.
	StartTime float64
	// StopTime overrides the FMU's default stop when > 0.
	StopTime float64
	// StepSize fixes the communication step when > 0.
	StepSize float64
	// NumSteps divides the window into equal steps when StepSize is not set.
	NumSteps int
	// Location is the FMU location passed through to Instantiate.
	Location string
	// InstanceName defaults to DefaultInstanceName.
	InstanceName string
}

// window is the resolved simulation grid.
type window struct {
	start float64
	stop  float64
	step  float64
}

// resolveWindow combines the FMU's default experiment with the overrides in cfg.
func resolveWindow(cfg Config, exp fmi.DefaultExperiment) (window, error) {
	w := window{
		start: exp.Start(cfg.StartTime),
		stop:  exp.Stop(),
	}
	if cfg.StopTime > 0 {
		w.stop = cfg.StopTime
	}
	if w.stop < w.start {
		return w, fmt.Errorf("%w: stop time %g is before start time %g", ErrConfig, w.stop, w.start)
	}

	switch {
	case cfg.StepSize > 0:
		w.step = cfg.StepSize
	case cfg.NumSteps > 0:
		w.step = (w.stop - w.start) / float64(cfg.NumSteps)
	default:
		return w, fmt.Errorf("%w: step size is not set and number of steps is %d", ErrConfig, cfg.NumSteps)
	}

	if math.IsNaN(w.step) || math.IsInf(w.step, 0) || w.step <= 0 {
		return w, fmt.Errorf("%w: invalid step size %g for window [%g, %g]", ErrConfig, w.step, w.start, w.stop)
	}
	// The clock must move at both ends of the window or the loop never finishes.
	if w.start+w.step == w.start || w.stop+w.step == w.stop {
		return w, fmt.Errorf("%w: step size %g is below the time resolution of [%g, %g]", ErrConfig, w.step, w.start, w.stop)
	}
	return w, nil
}

// Sentinel errors wrapped by Run. A nil error means the driver-level outcome
// is Success.
var (
	ErrConfig      = errors.New("invalid session configuration")
	ErrInstantiate = errors.New("could not instantiate the model")
	ErrInitialize  = errors.New("could not initialize the model")
	ErrStep        = errors.New("simulation step failed")
	ErrSink        = errors.New("could not write results")
	ErrReused      = errors.New("session already run")
)
