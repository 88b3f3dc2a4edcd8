// slave/slave.go
package slave

import (
	"errors"
	"fmt"

	"github.com/fmi-tools/fmucheck/fmi"
)

// Interface compliance checks.
var (
	_ fmi.Instance     = (*Slave)(nil)
	_ fmi.OutputReader = (*Slave)(nil)
)

// Options customize a slave. The zero value declares a standalone
// shared-library slave that never fails.
type Options struct {
	// Params override model parameters by name.
	Params map[string]float64
	// MIMEType overrides the declared transport descriptor.
	MIMEType string
	// Kind overrides the declared FMU kind.
	Kind *fmi.Kind

	// FailInstantiate makes Instantiate return an error.
	FailInstantiate bool
	// InitStatus is returned by Initialize instead of fmiOK when set.
	InitStatus fmi.Status
	// StepStatus is returned by DoStep for communication points at or
	// after StepStatusFrom, instead of fmiOK.
	StepStatus     fmi.Status
	StepStatusFrom float64
	// TerminateStatus is returned by Terminate instead of fmiOK when set.
	TerminateStatus fmi.Status
}

type phase int

const (
	phaseLoaded phase = iota
	phaseInstantiated
	phaseInitialized
	phaseTerminated
	phaseFreed
)

var errInstantiateRefused = errors.New("instantiation refused")

// Slave is an in-process co-simulation slave around a model.
type Slave struct {
	model      model
	opts       Options
	mimeType   string
	kind       fmi.Kind
	experiment fmi.DefaultExperiment

	phase phase
	name  string
	time  float64
}

func (s *Slave) MIMEType() string                         { return s.mimeType }
func (s *Slave) Kind() fmi.Kind                           { return s.kind }
func (s *Slave) DefaultExperiment() fmi.DefaultExperiment { return s.experiment }

// Instantiate accepts only the transports a shared-library slave can honor.
func (s *Slave) Instantiate(name, location, mimeType string, _ fmi.LaunchOptions) error {
	if s.phase != phaseLoaded {
		return fmt.Errorf("slave %q: instantiate called twice", name)
	}
	if s.opts.FailInstantiate {
		return errInstantiateRefused
	}
	if !fmi.IsSimulatableMIME(mimeType) {
		return fmt.Errorf("slave %q: unsupported MIME type %q", name, mimeType)
	}
	s.name = name
	s.phase = phaseInstantiated
	return nil
}

func (s *Slave) Initialize(start float64, _ bool, _ float64) fmi.Status {
	if s.phase != phaseInstantiated {
		return fmi.StatusError
	}
	s.model.reset(start)
	s.time = start
	s.phase = phaseInitialized
	if s.opts.InitStatus != fmi.StatusOK {
		return s.opts.InitStatus
	}
	return fmi.StatusOK
}

// DoStep integrates over [t, t+h). The slave cannot roll back, so a repeated
// step (newStep false) is rejected.
func (s *Slave) DoStep(t, h float64, newStep bool) fmi.Status {
	if s.phase != phaseInitialized || !newStep || h <= 0 {
		return fmi.StatusError
	}
	if s.opts.StepStatus != fmi.StatusOK && t >= s.opts.StepStatusFrom {
		return s.opts.StepStatus
	}
	s.model.advance(t, h)
	s.time = t + h
	return fmi.StatusOK
}

func (s *Slave) Terminate() fmi.Status {
	if s.phase != phaseInitialized && s.phase != phaseInstantiated {
		return fmi.StatusError
	}
	s.phase = phaseTerminated
	if s.opts.TerminateStatus != fmi.StatusOK {
		return s.opts.TerminateStatus
	}
	return fmi.StatusOK
}

func (s *Slave) Free() { s.phase = phaseFreed }

func (s *Slave) OutputNames() []string { return s.model.outputNames() }

// Outputs returns the model values after the most recent step.
func (s *Slave) Outputs() ([]float64, error) {
	if s.phase != phaseInitialized && s.phase != phaseTerminated {
		return nil, fmt.Errorf("slave %q: outputs are not available before initialization", s.name)
	}
	return s.model.values(), nil
}

// Time returns the slave's internal simulation time.
func (s *Slave) Time() float64 { return s.time }
