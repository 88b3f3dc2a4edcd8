// Package mock provides test doubles for fmi interfaces using function fields.
package mock

import "github.com/fmi-tools/fmucheck/fmi"

// Interface compliance checks.
var (
	_ fmi.Instance     = (*Instance)(nil)
	_ fmi.OutputReader = (*Instance)(nil)
)

// Instance is a test double for fmi.Instance.
// Unset function fields behave like a well-formed shared-library slave that
// reports fmiOK everywhere. Every lifecycle call is appended to Calls.
type Instance struct {
	MIME       string
	FMUKind    fmi.Kind
	Experiment fmi.DefaultExperiment

	InstantiateFn func(name, location, mimeType string, opts fmi.LaunchOptions) error
	InitializeFn  func(start float64, stopDefined bool, stop float64) fmi.Status
	DoStepFn      func(t, h float64, newStep bool) fmi.Status
	TerminateFn   func() fmi.Status
	OutputsFn     func() ([]float64, error)

	Calls []string
	Steps []float64
}

// MIMEType returns MIME.
func (m *Instance) MIMEType() string { return m.MIME }

// Kind returns FMUKind.
func (m *Instance) Kind() fmi.Kind { return m.FMUKind }

// DefaultExperiment returns Experiment.
func (m *Instance) DefaultExperiment() fmi.DefaultExperiment { return m.Experiment }

// Instantiate delegates to InstantiateFn.
func (m *Instance) Instantiate(name, location, mimeType string, opts fmi.LaunchOptions) error {
	m.Calls = append(m.Calls, "instantiate")
	if m.InstantiateFn == nil {
		return nil
	}
	return m.InstantiateFn(name, location, mimeType, opts)
}

// Initialize delegates to InitializeFn.
func (m *Instance) Initialize(start float64, stopDefined bool, stop float64) fmi.Status {
	m.Calls = append(m.Calls, "initialize")
	if m.InitializeFn == nil {
		return fmi.StatusOK
	}
	return m.InitializeFn(start, stopDefined, stop)
}

// DoStep records t in Steps and delegates to DoStepFn.
func (m *Instance) DoStep(t, h float64, newStep bool) fmi.Status {
	m.Calls = append(m.Calls, "step")
	m.Steps = append(m.Steps, t)
	if m.DoStepFn == nil {
		return fmi.StatusOK
	}
	return m.DoStepFn(t, h, newStep)
}

// Terminate delegates to TerminateFn.
func (m *Instance) Terminate() fmi.Status {
	m.Calls = append(m.Calls, "terminate")
	if m.TerminateFn == nil {
		return fmi.StatusOK
	}
	return m.TerminateFn()
}

// Free records the call.
func (m *Instance) Free() {
	m.Calls = append(m.Calls, "free")
}

// OutputNames reports a single output named "y".
func (m *Instance) OutputNames() []string { return []string{"y"} }

// Outputs delegates to OutputsFn, or reports the last stepped time as y.
func (m *Instance) Outputs() ([]float64, error) {
	if m.OutputsFn != nil {
		return m.OutputsFn()
	}
	if len(m.Steps) == 0 {
		return []float64{0}, nil
	}
	return []float64{m.Steps[len(m.Steps)-1]}, nil
}

// Count returns how many times the named lifecycle call was made.
func (m *Instance) Count(call string) int {
	n := 0
	for _, c := range m.Calls {
		if c == call {
			n++
		}
	}
	return n
}
