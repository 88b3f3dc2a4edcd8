package fmi

import "time"

// DefaultExperiment is the simulation window declared by the FMU.
type DefaultExperiment struct {
	StartTime    float64
	StopTime     float64
	StartDefined bool
	StopDefined  bool
}

// DefaultStopTime is used when the FMU declares no stop time.
const DefaultStopTime = 1.0

// Start returns the declared start time, or fallback when none is declared.
func (d DefaultExperiment) Start(fallback float64) float64 {
	if d.StartDefined {
		return d.StartTime
	}
	return fallback
}

// Stop returns the declared stop time, or DefaultStopTime.
func (d DefaultExperiment) Stop() float64 {
	if d.StopDefined {
		return d.StopTime
	}
	return DefaultStopTime
}

// LaunchOptions control how a tool-coupled slave is started.
// The zero value is non-visible, non-interactive, with no timeout.
type LaunchOptions struct {
	Visible     bool
	Interactive bool
	Timeout     time.Duration
}

// Instance is a loaded co-simulation FMU. A single caller owns it from
// Instantiate until Free; implementations need not be safe for concurrent use.
type Instance interface {
	MIMEType() string
	Kind() Kind
	DefaultExperiment() DefaultExperiment

	Instantiate(name, location, mimeType string, opts LaunchOptions) error
	Initialize(start float64, stopDefined bool, stop float64) Status
	// DoStep advances the slave over [t, t+h).
	DoStep(t, h float64, newStep bool) Status
	Terminate() Status
	Free()
}

// OutputReader exposes the current values of an instance's output variables.
type OutputReader interface {
	OutputNames() []string
	Outputs() ([]float64, error)
}
